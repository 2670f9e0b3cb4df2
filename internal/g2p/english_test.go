package g2p

import "testing"

func TestEnglishFallbackRules(t *testing.T) {
	cases := []struct {
		word string
		want []string
	}{
		// "N" matches no rule and is neither a vowel nor in STRL, so it
		// falls through to the single-letter default.
		{"NATION", []string{"T", "AH", "SH", "AH", "N"}},
		{"SING", []string{"S", "IH", "NG"}},
		{"SHIP", []string{"SH", "AH", "T"}},
	}

	for _, c := range cases {
		got := englishFallback(c.word)
		if len(got) != len(c.want) {
			t.Fatalf("%s: got %v, want %v", c.word, got, c.want)
		}
		for i, ph := range got {
			if ph.Sym != c.want[i] {
				t.Fatalf("%s: got %v, want %v", c.word, got, c.want)
			}
		}
	}
}

func TestEnglishFallbackSingleLetterDefaults(t *testing.T) {
	got := englishFallback("XZ")
	want := []string{"T", "T"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, ph := range got {
		if ph.Sym != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEnglishFallbackSTRLKeepsLetter(t *testing.T) {
	got := englishFallback("S")
	if len(got) != 1 || got[0].Sym != "S" {
		t.Fatalf("got %v, want [S]", got)
	}
}
