package g2p

import "testing"

func TestPredictArabicSunLetterAssimilation(t *testing.T) {
	// "الشمس" (the sun): ال + ش (a sun letter) collapses to AE, then
	// continues at ش itself.
	got := predictArabic("الشمس")
	if len(got) == 0 || got[0].Sym != "AE" {
		t.Fatalf("expected leading AE from sun-letter assimilation, got %v", got)
	}
	if got[1].Sym != "SH" {
		t.Fatalf("expected assimilated walk to continue at the sun letter, got %v", got)
	}
}

func TestPredictArabicMoonLetterKeepsLam(t *testing.T) {
	// "القمر" (the moon): ق is not a sun letter, so ال is pronounced as
	// written: AA then L.
	got := predictArabic("القمر")
	assertSyms(t, got[:2], []string{"AA", "L"})
}

func TestPredictArabicAlefMadda(t *testing.T) {
	got := predictArabic(string(alefMadda))
	assertSyms(t, got, []string{"Q", "AA"})
}

func TestPredictArabicShaddaDoublesConsonant(t *testing.T) {
	got := predictArabic(string([]rune{'د', shadda}))
	assertSyms(t, got, []string{"D", "D"})
}

func TestPredictArabicFathaOnEmphaticIsAA(t *testing.T) {
	got := predictArabic(string([]rune{'ص', fatha}))
	assertSyms(t, got, []string{"S_AR", "AA"})
}

func TestPredictArabicFathaOnPlainConsonantIsAE(t *testing.T) {
	got := predictArabic(string([]rune{'س', fatha}))
	assertSyms(t, got, []string{"S", "AE"})
}

func TestPredictArabicTanwinAddsN(t *testing.T) {
	got := predictArabic(string([]rune{'ب', dammatan}))
	assertSyms(t, got, []string{"B", "UH", "N"})
}

func TestPredictArabicHeuristicInsertsFathaBetweenConsonants(t *testing.T) {
	got := predictArabic("سلام")
	if len(got) == 0 {
		t.Fatal("expected non-empty phoneme sequence")
	}
	if got[0].Sym != "S" {
		t.Fatalf("expected leading S, got %v", got)
	}
	if got[len(got)-1].Sym != "M" {
		t.Fatalf("expected trailing M, got %v", got)
	}
}
