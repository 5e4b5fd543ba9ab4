package tokenmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/wordtok"
)

func TestOffsetMapping(t *testing.T) {
	doc1 := textdoc.FromText("This is a simple test with some words.", sentsplit.Fast)
	doc2 := textdoc.FromText("This is"+wordtok.ParaBreakTok+"a simple pytest adding other words."+wordtok.SentBreakTok+"And another sentence.", sentsplit.Fast)

	toks1 := doc1.AsWordtoks(false)
	toks2 := doc2.AsWordtoks(false)

	mapping, err := New(toks1, toks2, nil, 5, 1.0)
	require.NoError(t, err)

	back, err := mapping.MapBack(0)
	require.NoError(t, err)
	assert.Equal(t, 0, back)

	back, err = mapping.MapBack(8)
	require.NoError(t, err)
	assert.Equal(t, toks1[back], "test")
}

func TestValidateRejectsTooShort(t *testing.T) {
	_, err := New([]string{"a", "b"}, []string{"a", "c"}, nil, 10, 0.4)
	assert.Error(t, err)
}

func TestValidateRejectsTooDivergent(t *testing.T) {
	long1 := make([]string, 20)
	long2 := make([]string, 20)
	for i := range long1 {
		long1[i] = "a"
		long2[i] = "b"
	}
	_, err := New(long1, long2, nil, 10, 0.1)
	assert.Error(t, err)
}
