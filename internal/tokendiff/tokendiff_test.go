package tokendiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/wordtok"
)

const shortText1 = `Paragraph one lorem ipsum. Sentence 1a lorem ipsum. Sentence 1b lorem ipsum. Sentence 1c lorem ipsum.

Paragraph two lorem ipsum. Sentence 2a lorem ipsum. Sentence 2b lorem ipsum. Sentence 2c lorem ipsum.

Paragraph three lorem ipsum. Sentence 3a lorem ipsum. Sentence 3b lorem ipsum. Sentence 3c lorem ipsum.`

const shortText2 = `Paragraph one lorem ipsum. Sentence 1a lorem ipsum. Sentence 1b lorem ipsum. Sentence 1c lorem ipsum.
Paragraph two lorem ipsum blah. Sentence 2a lorem ipsum. Sentence 2b lorem ipsum. Sentence 2c lorem ipsum.

Paragraph three lorem ipsum! Sentence 3a lorem ipsum. Sentence 3b lorem ipsum.`

const shortText3 = `Paragraph one lorem ipsum. Sentence 1a lorem ipsum. Sentence 1b lorem ipsum. Sentence 1c lorem ipsum.
Paragraph two lorem ipsum. Sentence 2a lorem ipsum. Sentence 2b lorem ipsum. Sentence 2c lorem ipsum.

Paragraph three lorem ipsum. Sentence 3a lorem ipsum. Sentence 3b lorem ipsum. Sentence 3c lorem ipsum.`

func docToks(text string) []string {
	doc := textdoc.FromText(text, sentsplit.Fast)
	return doc.AsWordtoks(false)
}

func TestDiffWordtoksBasic(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"a", "x", "c", "y", "e"}
	diff := DiffWordtoks(a, b)
	result, err := diff.ApplyTo(a)
	require.NoError(t, err)
	assert.Equal(t, b, result)
}

func TestDiffWordtoksOnDocs(t *testing.T) {
	toks1 := docToks(shortText1)
	toks2 := docToks(shortText2)

	diff := DiffWordtoks(toks1, toks2)
	result, err := diff.ApplyTo(toks1)
	require.NoError(t, err)
	assert.Equal(t, toks2, result)
	assert.Equal(t, len(toks1), diff.LeftSize())
}

func TestFilterWhitespaceOnly(t *testing.T) {
	toks1 := docToks(shortText1)
	toks2 := docToks(shortText2)
	toks3 := docToks(shortText3)

	diff := DiffWordtoks(toks1, toks2)
	accepted, _ := diff.Filter(AddsOrRemovesWhitespace)

	result, err := accepted.ApplyTo(toks1)
	require.NoError(t, err)
	assert.Equal(t, toks3, result)
}

func TestFilterRoundTripInvariant(t *testing.T) {
	toks1 := docToks(shortText1)
	toks2 := docToks(shortText2)
	diff := DiffWordtoks(toks1, toks2)

	accepted, rejected := diff.Filter(AddsOrRemovesWhitespace)
	assert.Equal(t, diff.LeftSize(), accepted.LeftSize())
	assert.Equal(t, diff.LeftSize(), rejected.LeftSize())
}

func TestMakeTokenSequenceFilterWildcard(t *testing.T) {
	insertAction := Insert
	filter := MakeTokenSequenceFilter(
		[]TokenPattern{TokenPredicate(wordtok.IsBreakOrSpace), "<h1>", Wildcard, "</h1>", TokenPredicate(wordtok.IsBreakOrSpace)},
		&insertAction,
		nil,
	)

	insertOp := DiffOp{Action: Insert, Right: []string{wordtok.SentBreakTok, "<h1>", "Title", "</h1>", wordtok.ParaBreakTok}}
	deleteOp := DiffOp{Action: Delete, Left: []string{wordtok.SentBreakTok, "<h1>", "Old Title", "</h1>", wordtok.ParaBreakTok}}

	assert.True(t, filter(insertOp))
	assert.False(t, filter(deleteOp))
}

func TestAddsHeadings(t *testing.T) {
	op := DiffOp{Action: Insert, Right: []string{" ", "<h1>", "Title", "</h1>", " "}}
	assert.True(t, AddsHeadings(op))

	plain := DiffOp{Action: Insert, Right: []string{"just", " ", "text"}}
	assert.False(t, AddsHeadings(plain))
}

func TestFindBestAlignment(t *testing.T) {
	doc1 := textdoc.FromText(shortText1, sentsplit.Fast)
	sub, err := doc1.SubDoc(textdoc.SentIndex{ParaIndex: 1, SentIndex: 1}, nil)
	require.NoError(t, err)

	toks1 := doc1.AsWordtoks(false)
	toks2 := sub.AsWordtoks(false)

	offset, sd, err := FindBestAlignment(toks1, toks2, 1, DefaultAlignOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, sd.Score)
	assert.Empty(t, sd.Diff.Changes())
	assert.Equal(t, toks1[offset:], toks2)
}
