package sliding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
)

const repeatedParagraph = `Paragraph one. Sentence 1a. Sentence 1b. Sentence 1c.

Paragraph two. Sentence 2a. Sentence 2b. Sentence 2c.

Paragraph three. Sentence 3a. Sentence 3b. Sentence 3c.`

func repeatDoc(n int) string {
	paras := make([]string, n)
	for i := range paras {
		paras[i] = repeatedParagraph
	}
	return strings.Join(paras, "\n\n")
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, Settings{Unit: Wordtoks, Size: 80, Shift: 60, MinOverlap: 5}.Validate())
	assert.Error(t, Settings{Unit: Wordtoks, Size: 80, Shift: 80}.Validate())
	assert.Error(t, Settings{Unit: Wordtoks, Size: 80, Shift: 60, MinOverlap: 61}.Validate())
	assert.NoError(t, Settings{Unit: Paragraphs, Size: 3, Shift: 3}.Validate())
	assert.Error(t, Settings{Unit: Paragraphs, Size: 3, Shift: 2}.Validate())
	assert.Error(t, Settings{Unit: Paragraphs, Size: 3, Shift: 3, MinOverlap: 1}.Validate())
}

func TestWordtokWindowsCoverWholeDocument(t *testing.T) {
	doc := textdoc.FromText(repeatDoc(5), sentsplit.Fast)
	windows, err := Windows(doc, sentsplit.Fast, Settings{Unit: Wordtoks, Size: 80, Shift: 60, MinOverlap: 5})
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	for _, w := range windows {
		n, err := w.Size(textdoc.Wordtoks)
		require.NoError(t, err)
		assert.LessOrEqual(t, n, 80)
	}
	// Last window must reach the end of the document.
	last := windows[len(windows)-1]
	full := doc.Reassemble()
	assert.True(t, strings.HasSuffix(full, strings.TrimSpace(lastSentenceText(last))))
}

func lastSentenceText(doc textdoc.TextDoc) string {
	last := doc.Paragraphs[len(doc.Paragraphs)-1]
	return last.Sentences[len(last.Sentences)-1].Text
}

func TestWordtokWindowsFailOnOversizeSentence(t *testing.T) {
	huge := strings.Repeat("word ", 200) + "."
	doc := textdoc.FromText(huge, sentsplit.Fast)
	_, err := Windows(doc, sentsplit.Fast, Settings{Unit: Wordtoks, Size: 10, Shift: 5, MinOverlap: 1})
	assert.Error(t, err)
}

func TestParagraphWindows(t *testing.T) {
	text := "Paragraph 0.\n\nParagraph 1.\n\nParagraph 2.\n\nParagraph 3.\n\nParagraph 4.\n\nParagraph 5.\n\nParagraph 6."
	doc := textdoc.FromText(text, sentsplit.Fast)
	windows, err := Windows(doc, sentsplit.Fast, Settings{Unit: Paragraphs, Size: 3, Shift: 3})
	require.NoError(t, err)
	require.Len(t, windows, 3)
	assert.Equal(t, 3, len(windows[0].Paragraphs))
	assert.Equal(t, 3, len(windows[1].Paragraphs))
	assert.Equal(t, 1, len(windows[2].Paragraphs))
}

func TestTruncateAtWordtokOffset(t *testing.T) {
	doc := textdoc.FromText(repeatedParagraph, sentsplit.Fast)
	toks := doc.AsWordtoks(false)

	truncated, err := TruncateAtWordtokOffset(doc, len(toks)/2, sentsplit.Fast)
	require.NoError(t, err)
	truncatedToks := truncated.AsWordtoks(false)
	assert.LessOrEqual(t, len(truncatedToks), len(toks)/2+1)

	whole, err := TruncateAtWordtokOffset(doc, len(toks)+50, sentsplit.Fast)
	require.NoError(t, err)
	assert.Equal(t, doc.Reassemble(), whole.Reassemble())
}
