package provenance

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/tokenmap"
	"weft/internal/wordtok"
)

// nbsp separates citation text from its preceding sentence, matching the
// wire convention spec.md §8 Scenario F describes.
const nbsp = " "

// AppendCitation appends a link-style citation for seconds to text.
func AppendCitation(text string, seconds float64) string {
	link := FormatLink(seconds)
	return text + nbsp + "[" + link + "](t=" + formatSeconds(seconds) + "s)"
}

// formatSeconds renders seconds trimmed of trailing zeros, matching the
// precision the source annotation carried.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// BackfillOptions tunes the TokenMapping built between source and item.
type BackfillOptions struct {
	Splitter    sentsplit.Splitter
	MinWordtoks int
	MaxDiffFrac float64
}

// Backfill transplants timestamp citations from sourceText onto itemText,
// the sentence-mode algorithm of spec.md §4.8: for each sentence boundary
// in the derived document (a SENT_BR, a PARA_BR, or the document's final
// token, standing in for EOF), the boundary token itself — not a
// paragraph start it's backed up to — is mapped back into the source via
// a TokenMapping, the nearest preceding source timestamp is located, and
// a citation is appended to the sentence that boundary belongs to. This
// gives every sentence in a multi-sentence paragraph its own citation,
// rather than only the paragraph's last sentence.
//
// Following the design note in spec.md §9, this rebuilds an immutable
// copy of the item document rather than mutating sentences in place, and
// keeps the loop's boundary cursor (which sentence a token belongs to)
// separate from the citation-anchor position (the boundary token's own
// mapped offset) it computes per boundary.
func Backfill(sourceText, itemText string, opts BackfillOptions) (textdoc.TextDoc, error) {
	sourceToks, sourceOffsets := wordtok.RawTextToWordtokOffsets(sourceText, false)
	itemDoc := textdoc.FromText(itemText, opts.Splitter)
	itemToks, sentIdxs := itemDoc.AsWordtokToSent(false)

	mapping, err := tokenmap.New(sourceToks, itemToks, nil, opts.MinWordtoks, opts.MaxDiffFrac)
	if err != nil {
		return textdoc.TextDoc{}, err
	}
	sourceExtractor := newExtractorFromToks(sourceToks, sourceOffsets)

	paragraphs := append([]textdoc.Paragraph(nil), itemDoc.Paragraphs...)
	processed := make(map[textdoc.SentIndex]bool)

	for _, boundary := range sentenceBoundaries(itemToks) {
		sentIdx := sentIdxs[boundary]
		if processed[sentIdx] {
			continue
		}
		processed[sentIdx] = true

		sourceOffset, err := mapping.MapBack(boundary)
		if err != nil {
			log.WithField("sentence", sentIdx).Warnf("provenance: could not map sentence boundary back to source: %v", err)
			continue
		}

		ts, err := sourceExtractor.ExtractPreceding(sourceOffset)
		if err != nil {
			log.WithField("sentence", sentIdx).Warnf("provenance: %v", err)
			continue
		}

		paragraphs[sentIdx.ParaIndex] = withCitation(paragraphs[sentIdx.ParaIndex], sentIdx.SentIndex, ts.Seconds)
	}

	return textdoc.TextDoc{Paragraphs: paragraphs}, nil
}

// sentenceBoundaries returns, for every sentence in the document in
// order, the wordtok index of its citation-position token: the SENT_BR
// that follows it within the same paragraph, the PARA_BR that follows
// its paragraph, or (for the document's final sentence) the index of its
// own last wordtok, standing in for an EOF marker since toks here
// excludes BOF/EOF bookends.
func sentenceBoundaries(toks []string) []int {
	var bounds []int
	for i, tok := range toks {
		if tok == wordtok.SentBreakTok || tok == wordtok.ParaBreakTok {
			bounds = append(bounds, i)
		}
	}
	if len(toks) > 0 {
		bounds = append(bounds, len(toks)-1)
	}
	return bounds
}

// withCitation returns a copy of p with a citation for seconds appended to
// the sentence at sentIndex, leaving p itself untouched.
func withCitation(p textdoc.Paragraph, sentIndex int, seconds float64) textdoc.Paragraph {
	newSents := append([]textdoc.Sentence(nil), p.Sentences...)
	newSents[sentIndex] = textdoc.Sentence{
		Text:       AppendCitation(newSents[sentIndex].Text, seconds),
		CharOffset: newSents[sentIndex].CharOffset,
	}
	return textdoc.Paragraph{OriginalText: p.OriginalText, Sentences: newSents, CharOffset: p.CharOffset}
}
