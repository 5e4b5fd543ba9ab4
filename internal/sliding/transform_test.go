package sliding

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/tokendiff"
)

func uppercaseTransform(ctx context.Context, doc textdoc.TextDoc) (textdoc.TextDoc, error) {
	return textdoc.FromText(strings.ToUpper(doc.Reassemble()), sentsplit.Fast), nil
}

func TestRunNoWindowingAppliesDirectly(t *testing.T) {
	doc := textdoc.FromText("Hello there. Goodbye now.", sentsplit.Fast)
	out, err := Run(context.Background(), doc, uppercaseTransform, DriverOptions{Splitter: sentsplit.Fast})
	require.NoError(t, err)
	assert.Equal(t, "HELLO THERE. GOODBYE NOW.", out.Reassemble())
}

// Scenario D: sliding wordtok transform with uppercase stitches perfectly.
func TestRunWordtokWindowingPerfectStitch(t *testing.T) {
	doc := textdoc.FromText(repeatDoc(20), sentsplit.Fast)
	settings := Settings{Unit: Wordtoks, Size: 80, Shift: 60, MinOverlap: 5}

	out, err := Run(context.Background(), doc, uppercaseTransform, DriverOptions{
		Windowing: &settings,
		Splitter:  sentsplit.Fast,
		Filter:    tokendiff.AcceptAll,
	})
	require.NoError(t, err)

	expected := strings.TrimSpace(strings.ToUpper(doc.Reassemble()))
	assert.Equal(t, expected, strings.TrimSpace(out.Reassemble()))
}

// Scenario E: sliding paragraph transform inserts separators between runs.
func TestRunParagraphWindowingInsertsSeparators(t *testing.T) {
	paras := make([]string, 7)
	for i := range paras {
		paras[i] = "Paragraph " + string(rune('0'+i)) + "."
	}
	doc := textdoc.FromText(strings.Join(paras, "\n\n"), sentsplit.Fast)
	settings := Settings{Unit: Paragraphs, Size: 3, Shift: 3, Separator: WindowBreakMarker}

	out, err := Run(context.Background(), doc, uppercaseTransform, DriverOptions{
		Windowing: &settings,
		Splitter:  sentsplit.Fast,
		Filter:    tokendiff.AcceptAll,
	})
	require.NoError(t, err)

	text := out.Reassemble()
	assert.Equal(t, 2, strings.Count(text, WindowBreakMarker))
}

func TestRunStripsPriorWindowBreaksBeforeRewindowing(t *testing.T) {
	text := "Paragraph 0.\n\n" + WindowBreakMarker + "\n\nParagraph 1."
	doc := textdoc.FromText(text, sentsplit.Fast)
	settings := Settings{Unit: Paragraphs, Size: 1, Shift: 1}

	out, err := Run(context.Background(), doc, func(ctx context.Context, d textdoc.TextDoc) (textdoc.TextDoc, error) {
		return d, nil
	}, DriverOptions{Windowing: &settings, Splitter: sentsplit.Fast, Filter: tokendiff.AcceptAll})
	require.NoError(t, err)
	assert.Equal(t, 0, strings.Count(out.Reassemble(), WindowBreakMarker))
}
