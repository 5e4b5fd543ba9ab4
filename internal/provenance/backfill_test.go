package provenance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
)

// Scenario F: timestamp backfill recovers per-sentence citations, even
// when the timestamped sentences share a single paragraph.
func TestBackfillScenarioF(t *testing.T) {
	source := `<span data-timestamp="5.60">Alright, guys.</span> <span data-timestamp="6.16">Here's the deal.</span> We have a lot to cover today so let's get right into it without any more delay at all.`
	item := `Alright, guys. Here's the deal. We have a lot to cover today so let's get right into it without any more delay at all.`

	out, err := Backfill(source, item, BackfillOptions{Splitter: sentsplit.Fast, MinWordtoks: 5, MaxDiffFrac: 0.9})
	require.NoError(t, err)

	require.Len(t, out.Paragraphs, 1)
	require.Len(t, out.Paragraphs[0].Sentences, 3)
	assert.True(t, strings.Contains(out.Paragraphs[0].Sentences[0].Text, "00:05"))
	assert.True(t, strings.Contains(out.Paragraphs[0].Sentences[1].Text, "00:06"))
}

func TestBackfillSkipsParagraphsWithNoPrecedingTimestamp(t *testing.T) {
	source := `Plain text with absolutely no timestamp markers anywhere in this passage at all.`
	item := `Plain text with absolutely no timestamp markers anywhere in this passage at all.`

	out, err := Backfill(source, item, BackfillOptions{Splitter: sentsplit.Fast, MinWordtoks: 5, MaxDiffFrac: 0.9})
	require.NoError(t, err)
	assert.Equal(t, item, out.Reassemble())
}
