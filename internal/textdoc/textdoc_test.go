package textdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/wordtok"
)

const shortTestDoc = `Paragraph one lorem ipsum.
Sentence 1a lorem ipsum. Sentence 1b lorem ipsum. Sentence 1c lorem ipsum.

Paragraph two lorem ipsum. Sentence 2a lorem ipsum. Sentence 2b lorem ipsum. Sentence 2c lorem ipsum.

Paragraph three lorem ipsum. Sentence 3a lorem ipsum. Sentence 3b lorem ipsum. Sentence 3c lorem ipsum.`

func TestParseReassemble(t *testing.T) {
	doc := FromText(shortTestDoc, sentsplit.Fast)
	assert.Len(t, doc.Paragraphs, 3)

	normalize := func(s string) string {
		s = strings.ReplaceAll(s, "\n\n", "<PARA>")
		return strings.Join(strings.Fields(s), " ")
	}
	assert.Equal(t, normalize(shortTestDoc), normalize(doc.Reassemble()))
}

func TestDocSizes(t *testing.T) {
	doc := FromText(shortTestDoc, sentsplit.Fast)
	paras, err := doc.Size(Paragraphs)
	require.NoError(t, err)
	assert.Equal(t, 3, paras)

	sents, err := doc.Size(Sentences)
	require.NoError(t, err)
	assert.Greater(t, sents, 3)

	wordtoks, err := doc.Size(Wordtoks)
	require.NoError(t, err)
	assert.Greater(t, wordtoks, sents)

	assert.Contains(t, doc.SizeSummary(), "paragraphs")
}

func TestSeekToSent(t *testing.T) {
	doc := FromText(shortTestDoc, sentsplit.Fast)

	idx, offset, err := doc.SeekToSent(0, Bytes)
	require.NoError(t, err)
	assert.Equal(t, SentIndex{0, 0}, idx)
	assert.Equal(t, 0, offset)

	beyond, _, err := doc.SeekToSent(len(doc.Reassemble())+10, Bytes)
	require.NoError(t, err)
	assert.Equal(t, doc.LastIndex(), beyond)
}

func TestSubDoc(t *testing.T) {
	doc := FromText(shortTestDoc, sentsplit.Fast)

	start := SentIndex{1, 1}
	end := SentIndex{2, 1}
	sub, err := doc.SubDoc(start, &end)
	require.NoError(t, err)

	allSents := allSentences(doc)
	subSents := allSentences(sub)
	assert.Equal(t, allSents[5:10], subSents)

	full, err := doc.SubDoc(doc.FirstIndex(), nil)
	require.NoError(t, err)
	assert.Equal(t, doc, full)
}

func allSentences(d TextDoc) []Sentence {
	var out []Sentence
	for _, p := range d.Paragraphs {
		out = append(out, p.Sentences...)
	}
	return out
}

func TestTokenizationParaBreaks(t *testing.T) {
	doc := FromText(shortTestDoc, sentsplit.Fast)
	toks := doc.AsWordtoks(false)

	count := 0
	for _, tok := range toks {
		if tok == wordtok.ParaBreakTok {
			count++
		}
	}
	assert.Equal(t, 2, count)
	// Only the first newline is inside a paragraph; the rest are paragraph breaks.
	assert.Equal(t, strings.Replace(shortTestDoc, "\n", " ", 1), wordtok.JoinWordtoks(toks))
}

func TestWordtokMappings(t *testing.T) {
	doc := FromText(shortTestDoc, sentsplit.Fast)
	wordtokMapping, sentMapping := doc.WordtokMappings()

	assert.Equal(t, SentIndex{0, 0}, wordtokMapping[0])

	firstSentIdxs := sentMapping[SentIndex{0, 0}]
	assert.NotEmpty(t, firstSentIdxs)
	assert.Equal(t, 0, firstSentIdxs[0])
}

func TestBOFEOF(t *testing.T) {
	doc := FromText("Hello world.", sentsplit.Fast)
	toks := doc.AsWordtoks(true)
	assert.Equal(t, wordtok.BOFTok, toks[0])
	assert.Equal(t, wordtok.EOFTok, toks[len(toks)-1])
}
