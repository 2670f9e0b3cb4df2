package g2p

import "testing"

func TestPredictDispatchesByScript(t *testing.T) {
	p := New(nil)

	if _, slow := p.Predict("hello"); slow {
		t.Fatal("english should not be a slow language")
	}
	if _, slow := p.Predict("привет"); slow {
		t.Fatal("russian should not be a slow language")
	}
	if _, slow := p.Predict("سلام"); !slow {
		t.Fatal("arabic should be a slow language")
	}
}

func TestPredictEnglishPrefersDictionaryOverFallback(t *testing.T) {
	p := New(map[string][][]string{
		"hello": {{"HH", "AH0", "L", "OW1"}},
	})

	got, _ := p.Predict("HELLO")
	want := []string{"HH", "AH", "L", "OW"}
	assertSyms(t, got, want)
	if got[3].Stress != 1 {
		t.Fatalf("expected primary stress on OW, got %d", got[3].Stress)
	}
}

func TestPredictEnglishFallsBackOnDictionaryMiss(t *testing.T) {
	p := New(map[string][][]string{
		"hello": {{"HH", "AH0", "L", "OW1"}},
	})

	got, _ := p.Predict("xyz")
	if len(got) == 0 {
		t.Fatal("expected fallback to produce phonemes for an unknown word")
	}
}

func TestSplitStressStripsDigitsOnlyFromVowels(t *testing.T) {
	got := splitStress([]string{"HH", "AH0", "L"})
	assertSyms(t, got, []string{"HH", "AH", "L"})
	if got[0].Stress != 0 || got[1].Stress != 0 || got[2].Stress != 0 {
		t.Fatalf("unexpected stress values: %+v", got)
	}
}
