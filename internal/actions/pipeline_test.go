package actions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/workspace"
)

func passthrough(ctx context.Context, doc textdoc.TextDoc) (textdoc.TextDoc, error) {
	return doc, nil
}

func TestPipelineRunWritesOneVersionPerStep(t *testing.T) {
	store, err := workspace.Open(t.TempDir() + "/workspace.db")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	reg := New(sentsplit.Fast, passthrough, passthrough)
	p := Pipeline{Name: "roundtrip", Steps: []Name{Transcribe, ReformatParagraphs}}

	ctx := context.Background()
	item, err := store.NewItem(ctx, "Draft", "First paragraph.\n\nSecond paragraph.")
	require.NoError(t, err)

	final, err := Run(ctx, reg, store, p, item)
	require.NoError(t, err)
	assert.Equal(t, item.Version+len(p.Steps), final.Version)

	history, err := store.History(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1+len(p.Steps))
	assert.True(t, strings.Contains(final.Body, "First paragraph"))
}
