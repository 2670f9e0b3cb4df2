// Package dict implements the external "English pronunciation
// dictionary" collaborator from spec.md §6: a lowercased-word → ordered
// pronunciation-list mapping parsed from the CMU Pronouncing Dictionary
// text format.
package dict

import (
	"bufio"
	"io"
	"strings"
)

// Dict maps a lowercased word to its ordered pronunciations, each a
// list of phoneme symbols with stress digits still suffixed on vowels
// (callers split the digit off; see internal/g2p).
type Dict map[string][][]string

// Parse reads a CMU-dict-formatted stream. Lines starting with ";;;"
// are comments. A word with alternate pronunciations appears on
// multiple lines as "WORD(2)  PH0 PH1 ..."; those are folded into the
// base word's pronunciation list, in file order.
func Parse(r io.Reader) (Dict, error) {
	d := make(Dict)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		word := strings.ToLower(stripVariantSuffix(fields[0]))
		phonemes := fields[1:]
		d[word] = append(d[word], phonemes)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// stripVariantSuffix removes a trailing "(N)" alternate-pronunciation
// marker, e.g. "READ(2)" -> "READ".
func stripVariantSuffix(word string) string {
	i := strings.IndexByte(word, '(')
	if i < 0 {
		return word
	}
	return word[:i]
}

// Lookup lowercases word and returns its first pronunciation, and
// whether it was found.
func (d Dict) Lookup(word string) ([]string, bool) {
	prons, ok := d[strings.ToLower(word)]
	if !ok || len(prons) == 0 {
		return nil, false
	}
	return prons[0], true
}
