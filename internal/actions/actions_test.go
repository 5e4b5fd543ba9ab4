package actions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
)

func upper(ctx context.Context, doc textdoc.TextDoc) (textdoc.TextDoc, error) {
	return textdoc.FromText(strings.ToUpper(doc.Reassemble()), sentsplit.Fast), nil
}

func TestRunSummarizeAppliesTransform(t *testing.T) {
	reg := New(sentsplit.Fast, upper, upper)
	doc := textdoc.FromText("one fish two fish red fish blue fish.", sentsplit.Fast)

	out, err := reg.Run(context.Background(), Summarize, doc, "")
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(doc.Reassemble()), out.Reassemble())
}

func TestRunUnknownActionErrors(t *testing.T) {
	reg := New(sentsplit.Fast, upper, upper)
	_, err := reg.Run(context.Background(), Name("nonexistent"), textdoc.TextDoc{}, "")
	assert.Error(t, err)
}

func TestRunAnnotateTimestampsUsesSourceText(t *testing.T) {
	reg := New(sentsplit.Fast, upper, upper)
	source := `<span data-timestamp="5.60">Alright, guys.</span> trailing text that keeps going for a while to pass the minimum length check.`
	item := "Alright, guys. trailing text that keeps going for a while to pass the minimum length check."
	doc := textdoc.FromText(item, sentsplit.Fast)

	out, err := reg.Run(context.Background(), AnnotateTimestamps, doc, source)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out.Reassemble(), "00:05"))
}
