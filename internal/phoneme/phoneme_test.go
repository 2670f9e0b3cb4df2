package phoneme

import "testing"

func TestStopsCarryNoFormants(t *testing.T) {
	for sym, e := range Table {
		if e.Kind != Stop {
			continue
		}
		if e.F1 != 0 || e.F2 != 0 || e.F3 != 0 || e.F4 != 0 {
			t.Errorf("stop %s carries formants: %+v", sym, e)
		}
	}
}

func TestPauseEntriesCarryOnlyDuration(t *testing.T) {
	for sym, e := range Table {
		if e.Kind != Pause {
			continue
		}
		if e.F1 != 0 || e.F2 != 0 || e.F3 != 0 || e.F4 != 0 || e.GainDB != 0 {
			t.Errorf("pause %s carries non-duration fields: %+v", sym, e)
		}
	}
}

func TestLookupUnknownFails(t *testing.T) {
	if _, ok := Lookup("ZZZ_NOT_A_PHONEME"); ok {
		t.Fatal("expected lookup miss for unknown symbol")
	}
}

func TestLookupPlosiveDefaultsToT(t *testing.T) {
	got := LookupPlosive("XX")
	want := PlosiveTable["T"]
	if got != want {
		t.Fatalf("LookupPlosive(unknown) = %+v, want T entry %+v", got, want)
	}
}

func TestDiphthongMapCoversGlideVowels(t *testing.T) {
	for _, sym := range []string{"AY", "EY", "OY", "AW", "OW"} {
		if _, ok := DiphthongMap[sym]; !ok {
			t.Errorf("missing diphthong map entry for %s", sym)
		}
	}
}

func TestGainLinClampsSilence(t *testing.T) {
	e := Entry{GainDB: -120}
	if g := e.GainLin(); g != 0 {
		t.Fatalf("GainLin(-120dB) = %v, want 0", g)
	}
}
