// Package textdoc models documents as paragraphs of sentences, tracking
// character offsets into the original text and supporting size accounting,
// sub-document slicing, and wordtok-level views for diffing and windowing.
package textdoc

import (
	"fmt"
	"strings"

	"weft/internal/sentsplit"
	"weft/internal/wordtok"
)

// SentIndex addresses one sentence within a TextDoc.
type SentIndex struct {
	ParaIndex int
	SentIndex int
}

func (i SentIndex) String() string {
	return fmt.Sprintf("¶%d,§%d", i.ParaIndex, i.SentIndex)
}

// Less orders SentIndex first by paragraph, then by sentence.
func (i SentIndex) Less(other SentIndex) bool {
	if i.ParaIndex != other.ParaIndex {
		return i.ParaIndex < other.ParaIndex
	}
	return i.SentIndex < other.SentIndex
}

func (i SentIndex) after(other SentIndex) bool {
	return other.Less(i)
}

// Sentence is a single sentence of text and its offset in the source.
type Sentence struct {
	Text       string
	CharOffset int
}

// Size measures the sentence's text in the given unit.
func (s Sentence) Size(unit TextUnit) (int, error) {
	return Size(s.Text, unit)
}

// AsWordtoks tokenizes the sentence's text.
func (s Sentence) AsWordtoks() []string {
	return wordtok.RawTextToWordtoks(s.Text, false)
}

func (s Sentence) String() string {
	return fmt.Sprintf("%q", s.Text)
}

// Paragraph is a run of sentences with a char offset into the source text.
type Paragraph struct {
	OriginalText string
	Sentences    []Sentence
	CharOffset   int
}

// ParagraphFromText splits text into sentences using the given splitter
// and records the paragraph's char offset.
func ParagraphFromText(text string, charOffset int, splitter sentsplit.Splitter) Paragraph {
	sentValues := sentsplit.Split(text, splitter)
	sentOffset := 0
	sentences := make([]Sentence, 0, len(sentValues))
	for _, s := range sentValues {
		sentences = append(sentences, Sentence{Text: s, CharOffset: sentOffset})
		sentOffset += len(s) + len(wordtok.SentBreakStr)
	}
	return Paragraph{OriginalText: text, Sentences: sentences, CharOffset: charOffset}
}

// Reassemble joins the paragraph's sentences back into text.
func (p Paragraph) Reassemble() string {
	texts := make([]string, len(p.Sentences))
	for i, s := range p.Sentences {
		texts[i] = s.Text
	}
	return strings.Join(texts, wordtok.SentBreakStr)
}

// ReplaceStr replaces old with new in every sentence of the paragraph.
func (p *Paragraph) ReplaceStr(old, new string) {
	for i := range p.Sentences {
		p.Sentences[i].Text = strings.ReplaceAll(p.Sentences[i].Text, old, new)
	}
}

// Size measures the paragraph in the given unit.
func (p Paragraph) Size(unit TextUnit) (int, error) {
	switch unit {
	case Paragraphs:
		return 1, nil
	case Sentences:
		return len(p.Sentences), nil
	case Tiktokens:
		return Size(p.Reassemble(), Tiktokens)
	}

	base := 0
	for _, s := range p.Sentences {
		n, err := s.Size(unit)
		if err != nil {
			return 0, err
		}
		base += n
	}
	breaks := len(p.Sentences) - 1
	switch unit {
	case Bytes:
		return base + breaks*SizeInBytes(wordtok.SentBreakStr), nil
	case Chars:
		return base + breaks*len([]rune(wordtok.SentBreakStr)), nil
	case Words:
		return base, nil
	case Wordtoks:
		return base + breaks, nil
	default:
		return 0, fmt.Errorf("unsupported unit for paragraph: %s", unit)
	}
}

// wordtokSent pairs a wordtok with the index of the sentence it came from.
type wordtokSent struct {
	tok       string
	sentIndex int
}

func (p Paragraph) asWordtokToSent() []wordtokSent {
	var out []wordtokSent
	last := len(p.Sentences) - 1
	for si, s := range p.Sentences {
		for _, tok := range s.AsWordtoks() {
			out = append(out, wordtokSent{tok, si})
		}
		if si != last {
			out = append(out, wordtokSent{wordtok.SentBreakTok, si})
		}
	}
	return out
}

// AsWordtoks tokenizes the whole paragraph, inserting sentence-break
// markers between sentences.
func (p Paragraph) AsWordtoks() []string {
	pairs := p.asWordtokToSent()
	out := make([]string, len(pairs))
	for i, pr := range pairs {
		out[i] = pr.tok
	}
	return out
}

// TextDoc is a document of paragraphs, each split into sentences.
type TextDoc struct {
	Paragraphs []Paragraph
}

// FromText parses text into a TextDoc, splitting on blank lines for
// paragraphs and using splitter for sentence boundaries within each.
func FromText(text string, splitter sentsplit.Splitter) TextDoc {
	text = strings.TrimSpace(text)
	var paragraphs []Paragraph
	charOffset := 0
	for _, para := range strings.Split(text, wordtok.ParaBreakStr) {
		stripped := strings.TrimSpace(para)
		if stripped != "" {
			paragraphs = append(paragraphs, ParagraphFromText(stripped, charOffset, splitter))
		}
		charOffset += len(para) + len(wordtok.ParaBreakStr)
	}
	return TextDoc{Paragraphs: paragraphs}
}

// FromWordtoks rebuilds a TextDoc from a wordtok stream (e.g. after a
// stitched sliding-window transform).
func FromWordtoks(toks []string, splitter sentsplit.Splitter) TextDoc {
	return FromText(wordtok.JoinWordtoks(toks), splitter)
}

// Reassemble joins the document's paragraphs back into text.
func (d TextDoc) Reassemble() string {
	texts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		texts[i] = p.Reassemble()
	}
	return strings.Join(texts, wordtok.ParaBreakStr)
}

// ReplaceStr replaces old with new throughout the document.
func (d *TextDoc) ReplaceStr(old, new string) {
	for i := range d.Paragraphs {
		d.Paragraphs[i].ReplaceStr(old, new)
	}
}

// FirstIndex is the index of the document's first sentence.
func (d TextDoc) FirstIndex() SentIndex {
	return SentIndex{0, 0}
}

// LastIndex is the index of the document's last sentence.
func (d TextDoc) LastIndex() SentIndex {
	lastPara := len(d.Paragraphs) - 1
	return SentIndex{lastPara, len(d.Paragraphs[lastPara].Sentences) - 1}
}

// GetSent returns the sentence at index.
func (d TextDoc) GetSent(index SentIndex) Sentence {
	return d.Paragraphs[index.ParaIndex].Sentences[index.SentIndex]
}

// SetSent replaces the text of the sentence at index, preserving its
// char offset.
func (d *TextDoc) SetSent(index SentIndex, text string) {
	old := d.GetSent(index)
	d.Paragraphs[index.ParaIndex].Sentences[index.SentIndex] = Sentence{Text: text, CharOffset: old.CharOffset}
}

// UpdateSent rewrites the sentence at index by applying transform to its
// current text.
func (d *TextDoc) UpdateSent(index SentIndex, transform func(string) string) {
	d.SetSent(index, transform(d.GetSent(index).Text))
}

// SeekToSent finds the last sentence that starts at or before offset
// (measured in unit), returning its index and the offset of its start.
func (d TextDoc) SeekToSent(offset int, unit TextUnit) (SentIndex, int, error) {
	var sizeSentBreak, sizeParaBreak int
	switch unit {
	case Bytes:
		sizeSentBreak = SizeInBytes(wordtok.SentBreakStr)
		sizeParaBreak = SizeInBytes(wordtok.ParaBreakStr)
	case Chars:
		sizeSentBreak = len([]rune(wordtok.SentBreakStr))
		sizeParaBreak = len([]rune(wordtok.ParaBreakStr))
	case Words:
		sizeSentBreak, sizeParaBreak = 0, 0
	case Wordtoks:
		sizeSentBreak, sizeParaBreak = 1, 1
	default:
		return SentIndex{}, 0, fmt.Errorf("unsupported unit for seek: %s", unit)
	}

	currentSize := 0
	haveFit := false
	var lastFitIndex SentIndex
	lastFitOffset := 0

	for paraIndex, para := range d.Paragraphs {
		for sentIndex, sent := range para.Sentences {
			sentSize, err := sent.Size(unit)
			if err != nil {
				return SentIndex{}, 0, err
			}
			lastFitIndex = SentIndex{paraIndex, sentIndex}
			lastFitOffset = currentSize
			haveFit = true

			// The gap following this sentence: a sentence break within the
			// same paragraph, a paragraph break if this is a paragraph's
			// last sentence and another paragraph follows, or none at all.
			gap := 0
			switch {
			case sentIndex < len(para.Sentences)-1:
				gap = sizeSentBreak
			case paraIndex < len(d.Paragraphs)-1:
				gap = sizeParaBreak
			}

			if currentSize+sentSize+gap <= offset {
				currentSize += sentSize + gap
			} else {
				return lastFitIndex, lastFitOffset, nil
			}
		}
	}

	if !haveFit {
		return SentIndex{}, 0, fmt.Errorf("cannot seek into empty document")
	}
	return lastFitIndex, lastFitOffset, nil
}

// SubDoc returns the inclusive sub-document from first to last, preserving
// original paragraph and sentence offsets. A nil last means "to the end of
// the document".
func (d TextDoc) SubDoc(first SentIndex, last *SentIndex) (TextDoc, error) {
	end := d.LastIndex()
	if last != nil {
		end = *last
	}
	if end.after(d.LastIndex()) {
		return TextDoc{}, fmt.Errorf("end index out of range: %v > %v", end, d.LastIndex())
	}
	if first.Less(d.FirstIndex()) {
		return TextDoc{}, fmt.Errorf("start index out of range: %v < %v", first, d.FirstIndex())
	}

	var subParas []Paragraph
	for i := first.ParaIndex; i <= end.ParaIndex; i++ {
		para := d.Paragraphs[i]
		switch {
		case i == first.ParaIndex && i == end.ParaIndex:
			subParas = append(subParas, Paragraph{
				OriginalText: para.OriginalText,
				Sentences:    append([]Sentence(nil), para.Sentences[first.SentIndex:end.SentIndex+1]...),
				CharOffset:   para.CharOffset,
			})
		case i == first.ParaIndex:
			subParas = append(subParas, Paragraph{
				OriginalText: para.OriginalText,
				Sentences:    append([]Sentence(nil), para.Sentences[first.SentIndex:]...),
				CharOffset:   para.CharOffset,
			})
		case i == end.ParaIndex:
			subParas = append(subParas, Paragraph{
				OriginalText: para.OriginalText,
				Sentences:    append([]Sentence(nil), para.Sentences[:end.SentIndex+1]...),
				CharOffset:   para.CharOffset,
			})
		default:
			subParas = append(subParas, para)
		}
	}
	return TextDoc{Paragraphs: subParas}, nil
}

// SubParas returns a sub-document containing paragraphs [start, end]
// (inclusive). end < 0 means the last paragraph.
func (d TextDoc) SubParas(start, end int) TextDoc {
	if end < 0 {
		end = len(d.Paragraphs) - 1
	}
	return TextDoc{Paragraphs: append([]Paragraph(nil), d.Paragraphs[start:end+1]...)}
}

// PrevSent returns the sentence index immediately before index.
func (d TextDoc) PrevSent(index SentIndex) (SentIndex, error) {
	if index.SentIndex > 0 {
		return SentIndex{index.ParaIndex, index.SentIndex - 1}, nil
	}
	if index.ParaIndex > 0 {
		prevPara := index.ParaIndex - 1
		return SentIndex{prevPara, len(d.Paragraphs[prevPara].Sentences) - 1}, nil
	}
	return SentIndex{}, fmt.Errorf("no previous sentence")
}

// AppendSent appends a sentence to the document's last paragraph, creating
// one if the document is empty.
func (d *TextDoc) AppendSent(sent Sentence) {
	if len(d.Paragraphs) == 0 {
		d.Paragraphs = append(d.Paragraphs, Paragraph{OriginalText: sent.Text, Sentences: []Sentence{sent}})
		return
	}
	last := &d.Paragraphs[len(d.Paragraphs)-1]
	last.Sentences = append(last.Sentences, sent)
}

// Size measures the whole document in the given unit.
func (d TextDoc) Size(unit TextUnit) (int, error) {
	switch unit {
	case Paragraphs:
		return len(d.Paragraphs), nil
	case Sentences:
		n := 0
		for _, p := range d.Paragraphs {
			n += len(p.Sentences)
		}
		return n, nil
	case Tiktokens:
		return Size(d.Reassemble(), Tiktokens)
	}

	base := 0
	for _, p := range d.Paragraphs {
		n, err := p.Size(unit)
		if err != nil {
			return 0, err
		}
		base += n
	}
	breaks := len(d.Paragraphs) - 1
	switch unit {
	case Bytes:
		return base + breaks*SizeInBytes(wordtok.ParaBreakStr), nil
	case Chars:
		return base + breaks*len([]rune(wordtok.ParaBreakStr)), nil
	case Words:
		return base, nil
	case Wordtoks:
		return base + breaks, nil
	default:
		return 0, fmt.Errorf("unsupported unit for doc: %s", unit)
	}
}

// SizeSummary renders a human-readable breakdown across every unit except
// chars.
func (d TextDoc) SizeSummary() string {
	b, _ := d.Size(Bytes)
	p, _ := d.Size(Paragraphs)
	s, _ := d.Size(Sentences)
	w, _ := d.Size(Words)
	wt, _ := d.Size(Wordtoks)
	tt, _ := d.Size(Tiktokens)
	return fmt.Sprintf("%d bytes (%d paragraphs, %d sentences, %d words, %d wordtoks, %d tiktokens)", b, p, s, w, wt, tt)
}

// AsWordtokToSent tokenizes the whole document, returning each wordtok
// paired with the SentIndex it belongs to. If bofEOF is true, BOF/EOF
// markers bookend the stream, attributed to the first/last sentence.
func (d TextDoc) AsWordtokToSent(bofEOF bool) ([]string, []SentIndex) {
	var toks []string
	var idxs []SentIndex

	if bofEOF {
		toks = append(toks, wordtok.BOFTok)
		idxs = append(idxs, d.FirstIndex())
	}

	lastPara := len(d.Paragraphs) - 1
	for paraIndex, para := range d.Paragraphs {
		for _, pr := range para.asWordtokToSent() {
			toks = append(toks, pr.tok)
			idxs = append(idxs, SentIndex{paraIndex, pr.sentIndex})
		}
		if paraIndex != lastPara {
			toks = append(toks, wordtok.ParaBreakTok)
			idxs = append(idxs, SentIndex{paraIndex, len(para.Sentences) - 1})
		}
	}

	if bofEOF {
		toks = append(toks, wordtok.EOFTok)
		idxs = append(idxs, d.LastIndex())
	}
	return toks, idxs
}

// AsWordtoks tokenizes the whole document.
func (d TextDoc) AsWordtoks(bofEOF bool) []string {
	toks, _ := d.AsWordtokToSent(bofEOF)
	return toks
}

// WordtokMappings returns the bidirectional mapping between wordtok index
// and sentence index.
func (d TextDoc) WordtokMappings() (map[int]SentIndex, map[SentIndex][]int) {
	_, sentIndexes := d.AsWordtokToSent(false)

	wordtokMapping := make(map[int]SentIndex, len(sentIndexes))
	sentMapping := make(map[SentIndex][]int)
	for i, si := range sentIndexes {
		wordtokMapping[i] = si
		sentMapping[si] = append(sentMapping[si], i)
	}
	return wordtokMapping, sentMapping
}

func (d TextDoc) String() string {
	return fmt.Sprintf("TextDoc(%s)", d.SizeSummary())
}
