// Package sliding chunks a TextDoc into sub-documents by wordtok budget or
// paragraph count, and drives a caller-supplied transform across those
// windows, stitching the per-window outputs back into one document by
// minimum-edit-distance overlap search.
package sliding

import (
	"weft/internal/mdnorm"
	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/werrors"
)

// Unit names the dimension a Settings windows by.
type Unit string

const (
	// Wordtoks windows by wordtok budget, with overlapping shift.
	Wordtoks Unit = "wordtoks"
	// Paragraphs windows by a fixed paragraph count, no overlap.
	Paragraphs Unit = "paragraphs"
)

// Settings configures how a document is cut into windows and how
// consecutive window outputs are re-joined.
type Settings struct {
	Unit Unit
	// Size is the window budget: wordtoks per window, or paragraphs per
	// window, depending on Unit.
	Size int
	// Shift is how far the next window starts past the current one.
	// Wordtok windows require Shift < Size (the difference is the overlap
	// available for stitching); paragraph windows require Shift == Size.
	Shift int
	// MinOverlap is the minimum wordtok overlap FindBestAlignment must
	// search for when stitching two window outputs together. Paragraph
	// windows require MinOverlap == 0 (outputs are joined directly,
	// optionally via Separator, with no alignment search).
	MinOverlap int
	// Separator, if non-empty, is inserted as a wordtok between stitched
	// window outputs.
	Separator string
}

// Validate checks the invariants spec.md §3 places on WindowSettings.
func (s Settings) Validate() error {
	if s.Size <= 0 {
		return werrors.InvalidInput("window size must be positive, got %d", s.Size)
	}
	switch s.Unit {
	case Paragraphs:
		if s.Shift != s.Size {
			return werrors.InvalidInput("paragraph windows require shift == size (shift=%d, size=%d)", s.Shift, s.Size)
		}
		if s.MinOverlap != 0 {
			return werrors.InvalidInput("paragraph windows require min_overlap == 0, got %d", s.MinOverlap)
		}
	case Wordtoks:
		if s.Shift >= s.Size {
			return werrors.InvalidInput("wordtok windows require shift < size (shift=%d, size=%d)", s.Shift, s.Size)
		}
		if s.MinOverlap > s.Shift {
			return werrors.InvalidInput("wordtok windows require min_overlap <= shift (min_overlap=%d, shift=%d)", s.MinOverlap, s.Shift)
		}
	default:
		return werrors.InvalidInput("unknown window unit: %q", s.Unit)
	}
	return nil
}

// Windows cuts doc into sub-documents according to settings.
func Windows(doc textdoc.TextDoc, splitter sentsplit.Splitter, settings Settings) ([]textdoc.TextDoc, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.Unit == Paragraphs {
		return paragraphWindows(doc, splitter, settings.Size)
	}
	return wordtokWindows(doc, settings.Size, settings.Shift)
}

// allSentIndices enumerates every sentence index in document order.
func allSentIndices(doc textdoc.TextDoc) []textdoc.SentIndex {
	var idxs []textdoc.SentIndex
	for pi, p := range doc.Paragraphs {
		for si := range p.Sentences {
			idxs = append(idxs, textdoc.SentIndex{ParaIndex: pi, SentIndex: si})
		}
	}
	return idxs
}

// wordtokWindows implements spec.md §4.5's "by wordtok budget" generator:
// seek to the first sentence at or before the running offset, grow the
// candidate window sentence by sentence while it fits the budget, back off
// to the last sentence that fit, and advance by shift.
func wordtokWindows(doc textdoc.TextDoc, size, shift int) ([]textdoc.TextDoc, error) {
	sents := allSentIndices(doc)
	if len(sents) == 0 {
		return nil, werrors.InvalidInput("cannot window an empty document")
	}
	total, err := doc.Size(textdoc.Wordtoks)
	if err != nil {
		return nil, err
	}

	posOf := make(map[textdoc.SentIndex]int, len(sents))
	for i, si := range sents {
		posOf[si] = i
	}

	var windows []textdoc.TextDoc
	offset := 0
	for offset < total {
		startIdx, _, err := doc.SeekToSent(offset, textdoc.Wordtoks)
		if err != nil {
			return nil, werrors.UnexpectedError(err, "seek to sentence at wordtok offset %d", offset)
		}
		startPos := posOf[startIdx]

		lastFit := -1
		endPos := startPos
		for endPos < len(sents) {
			end := sents[endPos]
			sub, err := doc.SubDoc(startIdx, &end)
			if err != nil {
				return nil, werrors.UnexpectedError(err, "build candidate window [%v, %v]", startIdx, end)
			}
			n, err := sub.Size(textdoc.Wordtoks)
			if err != nil {
				return nil, err
			}
			if n > size {
				break
			}
			lastFit = endPos
			endPos++
		}
		if lastFit == -1 {
			return nil, werrors.InvalidInput("sentence at %v alone exceeds window size of %d wordtoks", startIdx, size)
		}

		endIdx := sents[lastFit]
		win, err := doc.SubDoc(startIdx, &endIdx)
		if err != nil {
			return nil, err
		}
		windows = append(windows, win)

		if lastFit == len(sents)-1 {
			break
		}
		offset += shift
	}
	return windows, nil
}

// paragraphWindows implements spec.md §4.5's "by paragraph count"
// generator. Each emitted slice is re-normalized through the Markdown
// normalizer before re-parsing, per spec.md §9's design note: without
// this, list items would not emerge as separate paragraphs for the next
// stage's sentence segmentation.
func paragraphWindows(doc textdoc.TextDoc, splitter sentsplit.Splitter, size int) ([]textdoc.TextDoc, error) {
	n := len(doc.Paragraphs)
	if n == 0 {
		return nil, werrors.InvalidInput("cannot window an empty document")
	}

	var windows []textdoc.TextDoc
	for start := 0; start < n; start += size {
		end := start + size - 1
		if end >= n {
			end = n - 1
		}
		sub := doc.SubParas(start, end)
		normalized := mdnorm.Normalize(sub.Reassemble())
		windows = append(windows, textdoc.FromText(normalized, splitter))
	}
	return windows, nil
}

// TruncateAtWordtokOffset returns a prefix of doc covering its first n
// wordtoks, re-parsing so the truncated tail re-forms a (possibly
// shortened) last sentence.
func TruncateAtWordtokOffset(doc textdoc.TextDoc, n int, splitter sentsplit.Splitter) (textdoc.TextDoc, error) {
	if n < 0 {
		return textdoc.TextDoc{}, werrors.InvalidInput("truncate offset must be non-negative, got %d", n)
	}
	toks := doc.AsWordtoks(false)
	if n >= len(toks) {
		return doc, nil
	}
	return textdoc.FromWordtoks(toks[:n], splitter), nil
}

// WindowBreakMarker is the default wordtok inserted between stitched
// outputs when a Settings.Separator is configured. It parses as a single
// HTML-tag-like wordtok so it survives re-tokenization without being
// mistaken for document content.
const WindowBreakMarker = "<!--window-br-->"
