// Package tokendiff computes LCS-style diffs between wordtok sequences and
// lets callers accept or reject individual changes via a DiffFilter.
package tokendiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"weft/internal/textdoc"
	"weft/internal/wordtok"
)

// OpType is the kind of change a DiffOp represents.
type OpType int

const (
	Equal OpType = iota
	Insert
	Delete
	Replace
)

// Symbol renders the op type as a single-character diff marker.
func (t OpType) Symbol() string {
	switch t {
	case Equal:
		return " "
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "±"
	default:
		return "?"
	}
}

// Abbrev renders the op type as a short label used in diff listings.
func (t OpType) Abbrev() string {
	switch t {
	case Equal:
		return "keep"
	case Insert:
		return "add "
	case Delete:
		return "del "
	case Replace:
		return "repl"
	default:
		return "????"
	}
}

// DiffOp is one operation in a TokenDiff: a run of wordtoks kept, added,
// removed, or replaced.
type DiffOp struct {
	Action OpType
	Left   []string
	Right  []string
}

// NewDiffOp builds a DiffOp, validating the invariant that Left/Right are
// populated consistently with Action.
func NewDiffOp(action OpType, left, right []string) (DiffOp, error) {
	op := DiffOp{Action: action, Left: left, Right: right}
	switch action {
	case Replace:
		if len(left) == 0 || len(right) == 0 {
			return DiffOp{}, fmt.Errorf("tokendiff: replace op requires non-empty left and right")
		}
	case Equal:
		if !equalSlices(left, right) {
			return DiffOp{}, fmt.Errorf("tokendiff: equal op requires left == right")
		}
	case Insert:
		if len(left) != 0 {
			return DiffOp{}, fmt.Errorf("tokendiff: insert op requires empty left")
		}
	case Delete:
		if len(right) != 0 {
			return DiffOp{}, fmt.Errorf("tokendiff: delete op requires empty right")
		}
	}
	return op, nil
}

func equalSlices(a, b []string) bool {
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

// AllChanged returns every token touched by the op (empty for Equal).
func (op DiffOp) AllChanged() []string {
	if op.Action == Equal {
		return nil
	}
	out := make([]string, 0, len(op.Left)+len(op.Right))
	out = append(out, op.Left...)
	out = append(out, op.Right...)
	return out
}

func (op DiffOp) leftStr(showToks bool) string {
	s := fmt.Sprintf("%s %4d toks", op.Action.Abbrev(), len(op.Left))
	if showToks {
		s += fmt.Sprintf(": - %s%s%s", wordtok.SymbolSep, strings.Join(op.Left, ""), wordtok.SymbolSep)
	}
	return s
}

func (op DiffOp) rightStr(showToks bool) string {
	s := fmt.Sprintf("%s %4d toks", op.Action.Abbrev(), len(op.Right))
	if showToks {
		s += fmt.Sprintf(": + %s%s%s", wordtok.SymbolSep, strings.Join(op.Right, ""), wordtok.SymbolSep)
	}
	return s
}

func (op DiffOp) equalStr(showToks bool) string {
	s := fmt.Sprintf("%s %4d toks", op.Action.Abbrev(), len(op.Left))
	if showToks {
		s += fmt.Sprintf(":   %s%s%s", wordtok.SymbolSep, strings.Join(op.Left, ""), wordtok.SymbolSep)
	}
	return s
}

// DiffStats summarizes how many wordtoks were added/removed by a diff.
type DiffStats struct {
	Added     int
	Removed   int
	InputSize int
}

// NChanges is the total number of changed wordtoks.
func (s DiffStats) NChanges() int {
	return s.Added + s.Removed
}

func (s DiffStats) String() string {
	return fmt.Sprintf("add/remove +%d/-%d out of %d total", s.Added, s.Removed, s.InputSize)
}

// DiffFilter decides whether a single non-equal DiffOp should be accepted.
type DiffFilter func(op DiffOp) bool

// AcceptAll is a DiffFilter that accepts every change.
func AcceptAll(op DiffOp) bool { return true }

// TokenDiff is an LCS-style diff of two wordtok sequences.
type TokenDiff struct {
	Ops []DiffOp
}

// LeftSize is the total wordtok count of the diff's left (original) side.
func (d TokenDiff) LeftSize() int {
	n := 0
	for _, op := range d.Ops {
		n += len(op.Left)
	}
	return n
}

// RightSize is the total wordtok count of the diff's right (result) side.
func (d TokenDiff) RightSize() int {
	n := 0
	for _, op := range d.Ops {
		n += len(op.Right)
	}
	return n
}

// Changes returns every non-equal op in the diff.
func (d TokenDiff) Changes() []DiffOp {
	var out []DiffOp
	for _, op := range d.Ops {
		if op.Action != Equal {
			out = append(out, op)
		}
	}
	return out
}

// Stats summarizes the diff's changes.
func (d TokenDiff) Stats() DiffStats {
	added, removed := 0, 0
	for _, op := range d.Ops {
		if op.Action != Equal {
			added += len(op.Right)
			removed += len(op.Left)
		}
	}
	return DiffStats{Added: added, Removed: removed, InputSize: d.LeftSize()}
}

// ApplyTo applies the diff (including equal ops) to originalWordtoks,
// producing the resulting wordtok sequence.
func (d TokenDiff) ApplyTo(originalWordtoks []string) ([]string, error) {
	if len(originalWordtoks) != d.LeftSize() {
		return nil, fmt.Errorf("tokendiff: original wordtoks length %d != diff left size %d", len(originalWordtoks), d.LeftSize())
	}
	var result []string
	for _, op := range d.Ops {
		result = append(result, op.Right...)
	}
	return result, nil
}

// Filter splits the diff into an accepted half (only changes passing
// accept) and a rejected half (everything else), each a complete,
// reapplicable diff over the same left side.
func (d TokenDiff) Filter(accept DiffFilter) (TokenDiff, TokenDiff) {
	accepted := make([]DiffOp, len(d.Ops))
	rejected := make([]DiffOp, len(d.Ops))

	for i, op := range d.Ops {
		if op.Action == Equal {
			accepted[i] = op
			rejected[i] = op
			continue
		}
		if accept(op) {
			accepted[i] = op
			rejected[i] = DiffOp{Action: Equal, Left: op.Left, Right: op.Left}
		} else {
			accepted[i] = DiffOp{Action: Equal, Left: op.Left, Right: op.Left}
			rejected[i] = op
		}
	}

	return TokenDiff{Ops: accepted}, TokenDiff{Ops: rejected}
}

func (d TokenDiff) diffLines(includeEqual bool) []string {
	if len(d.Ops) == 0 {
		return []string{"(No changes)"}
	}
	pos := 0
	var lines []string
	for _, op := range d.Ops {
		switch op.Action {
		case Equal:
			if includeEqual {
				lines = append(lines, fmt.Sprintf("at pos %4d %s", pos, op.equalStr(true)))
			}
		case Insert:
			lines = append(lines, fmt.Sprintf("at pos %4d %s", pos, op.rightStr(true)))
		case Delete:
			lines = append(lines, fmt.Sprintf("at pos %4d %s", pos, op.leftStr(true)))
		case Replace:
			lines = append(lines, fmt.Sprintf("at pos %4d %s", pos, op.leftStr(true)))
			lines = append(lines, fmt.Sprintf("       %4s %s", "", op.rightStr(true)))
		}
		pos += len(op.Left)
	}
	return lines
}

// AsDiffStr renders the diff as a human-readable listing.
func (d TokenDiff) AsDiffStr(includeEqual bool) string {
	return fmt.Sprintf("TextDiff: %s:\n%s", d.Stats(), strings.Join(d.diffLines(includeEqual), "\n"))
}

func (d TokenDiff) String() string {
	return d.AsDiffStr(true)
}

// tokenInterner maps distinct wordtoks to runes so diffmatchpatch's
// rune-based LCS engine operates on whole tokens instead of characters,
// generalizing its documented "lines to chars" trick to arbitrary tokens.
type tokenInterner struct {
	toIdx map[string]rune
	toTok []string
}

func newTokenInterner() *tokenInterner {
	return &tokenInterner{toIdx: make(map[string]rune)}
}

func (in *tokenInterner) intern(tok string) rune {
	if r, ok := in.toIdx[tok]; ok {
		return r
	}
	r := rune(len(in.toTok))
	in.toIdx[tok] = r
	in.toTok = append(in.toTok, tok)
	return r
}

func (in *tokenInterner) runes(toks []string) []rune {
	out := make([]rune, len(toks))
	for i, t := range toks {
		out[i] = in.intern(t)
	}
	return out
}

// DiffWordtoks computes an LCS-style diff between two wordtok sequences.
func DiffWordtoks(wordtoks1, wordtoks2 []string) TokenDiff {
	interner := newTokenInterner()
	runes1 := interner.runes(wordtoks1)
	runes2 := interner.runes(wordtoks2)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(runes1, runes2, false)

	return TokenDiff{Ops: diffsToOps(diffs, interner.toTok)}
}

// diffsToOps converts diffmatchpatch's Equal/Insert/Delete runs into
// EQUAL/INSERT/DELETE/REPLACE DiffOps, merging an adjacent delete+insert
// (in either order) into a single REPLACE the way Python's difflib
// opcodes do.
func diffsToOps(diffs []diffmatchpatch.Diff, vocab []string) []DiffOp {
	toToks := func(runes []rune) []string {
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = vocab[r]
		}
		return out
	}

	var ops []DiffOp
	i := 0
	for i < len(diffs) {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			toks := toToks([]rune(d.Text))
			ops = append(ops, DiffOp{Action: Equal, Left: toks, Right: toks})
			i++
		case diffmatchpatch.DiffDelete, diffmatchpatch.DiffInsert:
			var delToks, insToks []string
			if d.Type == diffmatchpatch.DiffDelete {
				delToks = toToks([]rune(d.Text))
				if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
					insToks = toToks([]rune(diffs[i+1].Text))
					i += 2
				} else {
					i++
				}
			} else {
				insToks = toToks([]rune(d.Text))
				if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffDelete {
					delToks = toToks([]rune(diffs[i+1].Text))
					i += 2
				} else {
					i++
				}
			}
			switch {
			case len(delToks) > 0 && len(insToks) > 0:
				ops = append(ops, DiffOp{Action: Replace, Left: delToks, Right: insToks})
			case len(delToks) > 0:
				ops = append(ops, DiffOp{Action: Delete, Left: delToks})
			case len(insToks) > 0:
				ops = append(ops, DiffOp{Action: Insert, Right: insToks})
			}
		default:
			i++
		}
	}
	return ops
}

// DiffDocs computes the wordtok-level diff between two documents.
func DiffDocs(doc1, doc2 textdoc.TextDoc) TokenDiff {
	return DiffWordtoks(doc1.AsWordtoks(false), doc2.AsWordtoks(false))
}
