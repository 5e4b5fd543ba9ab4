package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAll(t *testing.T) {
	doc := `This is <span data-timestamp="1.234">a test</span>.`
	e := NewExtractor(doc)
	all := e.ExtractAll()
	require.Len(t, all, 1)
	assert.InDelta(t, 1.234, all[0].Seconds, 0.0001)
}

func TestExtractPreceding(t *testing.T) {
	doc := `<span data-timestamp="5.60">Alright, guys.</span> <span data-timestamp="6.16">Here's the deal.</span> trailing text`
	e := NewExtractor(doc)
	all := e.ExtractAll()
	require.Len(t, all, 2)

	ts, err := e.ExtractPreceding(len(e.toks) - 1)
	require.NoError(t, err)
	assert.InDelta(t, 6.16, ts.Seconds, 0.0001)
}

func TestExtractPrecedingFailsWithNoTimestamp(t *testing.T) {
	e := NewExtractor("no timestamps here at all")
	_, err := e.ExtractPreceding(3)
	assert.Error(t, err)
}

func TestFormatLink(t *testing.T) {
	assert.Equal(t, "00:05", FormatLink(5.60))
	assert.Equal(t, "00:06", FormatLink(6.16))
}
