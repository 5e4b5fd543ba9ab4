// Package provenance locates HTML-style timestamp annotations in a
// document and transplants them across a transformation using a
// tokenmap.TokenMapping, so a derived document (e.g. a cleaned-up
// transcript) can recover per-sentence citations into its source.
package provenance

import (
	"fmt"
	"regexp"
	"strconv"

	"weft/internal/tokensearch"
	"weft/internal/werrors"
	"weft/internal/wordtok"
)

// Timestamp is one data-timestamp-bearing wordtok found in a document.
type Timestamp struct {
	Seconds      float64
	WordtokIndex int
	CharOffset   int
}

// timestampAttr matches the data-timestamp="NUMBER" attribute spec.md §6
// defines as the wire format for timestamp annotations, inside any tag.
var timestampAttr = regexp.MustCompile(`data-timestamp="([0-9]+(?:\.[0-9]+)?)"`)

func parseTimestampTag(tok string) (float64, bool) {
	m := timestampAttr.FindStringSubmatch(tok)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isTimestampTag is the tokensearch.Predicate used to seek over tagged
// wordtoks.
func isTimestampTag(tok string) bool {
	_, ok := parseTimestampTag(tok)
	return ok
}

// Extractor tokenizes a document and locates every wordtok carrying a
// data-timestamp attribute.
type Extractor struct {
	toks    []string
	offsets []int
}

// NewExtractor tokenizes docStr (bookended with BOF/EOF, per spec.md §4.8)
// for timestamp extraction.
func NewExtractor(docStr string) *Extractor {
	toks, offsets := wordtok.RawTextToWordtokOffsets(docStr, true)
	return &Extractor{toks: toks, offsets: offsets}
}

// newExtractorFromToks wraps an already-tokenized stream (with matching
// char offsets), for internal reuse by Backfill against wordtoks it has
// already built for diffing.
func newExtractorFromToks(toks []string, offsets []int) *Extractor {
	return &Extractor{toks: toks, offsets: offsets}
}

// ExtractAll returns every timestamp-bearing wordtok in document order.
func (e *Extractor) ExtractAll() []Timestamp {
	var out []Timestamp
	for i, tok := range e.toks {
		if v, ok := parseTimestampTag(tok); ok {
			out = append(out, Timestamp{Seconds: v, WordtokIndex: i, CharOffset: e.offsets[i]})
		}
	}
	return out
}

// ExtractPreceding seeks backward from wordtok index j for the nearest
// timestamp-bearing tag, failing with a ContentError if none precedes it.
func (e *Extractor) ExtractPreceding(j int) (Timestamp, error) {
	if j < 0 || j > len(e.toks) {
		return Timestamp{}, werrors.InvalidInput("provenance: wordtok index %d out of range (len %d)", j, len(e.toks))
	}
	idx, err := tokensearch.Search(e.toks).At(clampAt(j, len(e.toks))).SeekBack(isTimestampTag).Index()
	if err != nil {
		return Timestamp{}, werrors.ContentError("provenance: no timestamp precedes wordtok %d", j)
	}
	v, _ := parseTimestampTag(e.toks[idx])
	return Timestamp{Seconds: v, WordtokIndex: idx, CharOffset: e.offsets[idx]}, nil
}

// clampAt keeps SeekBack's starting point valid when j points one past the
// last token (the common case for an end-of-document cursor).
func clampAt(j, length int) int {
	if j >= length {
		return length - 1
	}
	return j
}

// FormatLink renders seconds as an "mm:ss" citation link target.
func FormatLink(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
