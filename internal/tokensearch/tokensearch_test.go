package tokensearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/wordtok"
)

func TestSeekForwardAndBack(t *testing.T) {
	toks := wordtok.RawTextToWordtoks(`Hello, "example sentence" <span data-timestamp="5.60">x</span>`, false)

	idx, tok, err := Search(toks).At(0).SeekForward(Literal("example")).Token()
	require.NoError(t, err)
	assert.Equal(t, "example", tok)
	assert.Greater(t, idx, 0)

	idx2, tok2, err := Search(toks).At(-1).SeekBack(Literal("Hello")).Token()
	require.NoError(t, err)
	assert.Equal(t, "Hello", tok2)
	assert.Less(t, idx2, idx)
}

func TestSeekForwardPredicate(t *testing.T) {
	toks := wordtok.RawTextToWordtoks(`"Special characters" <span data-timestamp="5.60">Alright</span>`, false)
	_, tok, err := Search(toks).At(-1).SeekBack(Literal("Special")).SeekForward(wordtok.IsTag).Token()
	require.NoError(t, err)
	assert.True(t, wordtok.IsTag(tok))
}

func TestSeekNotFound(t *testing.T) {
	toks := []string{"a", "b", "c"}
	_, err := Search(toks).At(0).SeekBack(Literal("z")).Index()
	assert.Error(t, err)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestNextPrevBounds(t *testing.T) {
	toks := []string{"a", "b"}
	_, err := Search(toks).At(0).Prev().Index()
	assert.Error(t, err)
	_, err = Search(toks).At(1).Next().Index()
	assert.Error(t, err)
}
