// Package tokenmap back-maps wordtok offsets from a derived document to
// the source document it was transformed from, so metadata anchored to
// source offsets (like timestamps) can be carried forward across a
// transform.
package tokenmap

import (
	"fmt"
	"strings"

	"weft/internal/tokendiff"
	"weft/internal/wordtok"
)

// TokenMapping maps wordtok offsets in wordtoks2 back to the offset in
// wordtoks1 they derived from.
type TokenMapping struct {
	Wordtoks1 []string
	Wordtoks2 []string
	Diff      tokendiff.TokenDiff
	backmap   map[int]int
}

// New builds a TokenMapping between two wordtok sequences, computing the
// diff between them if diff is nil. It rejects inputs that are too short
// or too divergent to map reliably.
func New(wordtoks1, wordtoks2 []string, diff *tokendiff.TokenDiff, minWordtoks int, maxDiffFrac float64) (*TokenMapping, error) {
	if minWordtoks <= 0 {
		minWordtoks = 10
	}
	if maxDiffFrac <= 0 {
		maxDiffFrac = 0.4
	}

	var d tokendiff.TokenDiff
	if diff != nil {
		d = *diff
	} else {
		d = tokendiff.DiffWordtoks(wordtoks1, wordtoks2)
	}

	m := &TokenMapping{Wordtoks1: wordtoks1, Wordtoks2: wordtoks2, Diff: d}
	if err := m.validate(minWordtoks, maxDiffFrac); err != nil {
		return nil, err
	}
	m.createMapping()
	return m, nil
}

func (m *TokenMapping) validate(minWordtoks int, maxDiffFrac float64) error {
	if len(m.Wordtoks1) < minWordtoks || len(m.Wordtoks2) < minWordtoks {
		return fmt.Errorf("tokenmap: documents should have at least %d wordtoks", minWordtoks)
	}
	nchanges := m.Diff.Stats().NChanges()
	frac := float64(nchanges) / float64(len(m.Wordtoks1))
	if frac > maxDiffFrac {
		return fmt.Errorf("tokenmap: documents have too many changes: %d/%d (%.2f > %.2f)", nchanges, len(m.Wordtoks1), frac, maxDiffFrac)
	}
	return nil
}

func (m *TokenMapping) createMapping() {
	m.backmap = make(map[int]int)
	offset1, offset2, lastOffset1 := 0, 0, 0

	for _, op := range m.Diff.Ops {
		switch op.Action {
		case tokendiff.Equal:
			for range op.Left {
				m.backmap[offset2] = offset1
				lastOffset1 = offset1
				offset1++
				offset2++
			}
		case tokendiff.Delete:
			for range op.Left {
				lastOffset1 = offset1
				offset1++
			}
		case tokendiff.Insert:
			for range op.Right {
				m.backmap[offset2] = lastOffset1
				offset2++
			}
		case tokendiff.Replace:
			for range op.Left {
				lastOffset1 = offset1
				offset1++
			}
			for range op.Right {
				m.backmap[offset2] = lastOffset1
				offset2++
			}
		}
	}
}

// MapBack returns the wordtoks1 offset that offset2 (an index into
// wordtoks2) derived from.
func (m *TokenMapping) MapBack(offset2 int) (int, error) {
	v, ok := m.backmap[offset2]
	if !ok {
		return 0, fmt.Errorf("tokenmap: no mapping for offset %d", offset2)
	}
	return v, nil
}

// FullMappingStr renders every offset2 -> offset1 mapping, for debugging.
func (m *TokenMapping) FullMappingStr() string {
	var b strings.Builder
	for i := range m.Wordtoks2 {
		back, _ := m.MapBack(i)
		fmt.Fprintf(&b, "%d %s%s%s -> %d %s%s%s\n", i, wordtok.SymbolSep, m.Wordtoks2[i], wordtok.SymbolSep,
			back, wordtok.SymbolSep, m.Wordtoks1[back], wordtok.SymbolSep)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *TokenMapping) String() string {
	return fmt.Sprintf("TokenMapping(doc1 len %d, doc2 len %d, mapping len %d)", len(m.Wordtoks1), len(m.Wordtoks2), len(m.backmap))
}
