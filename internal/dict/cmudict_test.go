package dict

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	src := `;;; comment line, ignored
HELLO  HH AH0 L OW1
WORLD  W ER1 L D
READ  R IY1 D
READ(2)  R EH1 D
`
	d, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pron, ok := d.Lookup("hello")
	if !ok {
		t.Fatal("expected lookup hit for hello")
	}
	if want := []string{"HH", "AH0", "L", "OW1"}; !equal(pron, want) {
		t.Fatalf("hello pronunciation = %v, want %v", pron, want)
	}

	prons := d["read"]
	if len(prons) != 2 {
		t.Fatalf("expected 2 pronunciations for read (incl. variant), got %d: %v", len(prons), prons)
	}
}

func TestLookupMiss(t *testing.T) {
	d, _ := Parse(strings.NewReader("HELLO  HH AH0 L OW1\n"))
	if _, ok := d.Lookup("nonexistentword"); ok {
		t.Fatal("expected lookup miss")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
