package actions

import (
	"context"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/werrors"
	"weft/internal/workspace"
)

// Pipeline is a named sequence of actions run over one workspace item, one
// step at a time, each step writing a new version.
type Pipeline struct {
	Name  string
	Steps []Name
}

// Run executes p against item in store, writing one new version per step
// and returning the final version. Every step parses the most recent
// version's body. AnnotateTimestamps takes the body of the item the
// pipeline started from as its source for timestamp lookup; every other
// step gets the most recent version's body as its source text.
func Run(ctx context.Context, reg Registry, store *workspace.Store, p Pipeline, item workspace.Item) (workspace.Item, error) {
	current := item
	original := item.Body

	for _, step := range p.Steps {
		doc := textdoc.FromText(current.Body, sentsplit.Fast)

		sourceText := current.Body
		if step == AnnotateTimestamps {
			// annotate_timestamps looks up citations from the raw,
			// timestamp-bearing transcript the pipeline started from, not
			// from whatever the previous step produced.
			sourceText = original
		}

		out, err := reg.Run(ctx, step, doc, sourceText)
		if err != nil {
			return workspace.Item{}, werrors.ContentError("pipeline %q step %q: %v", p.Name, step, err)
		}

		next, err := store.NewVersion(ctx, current, current.Title, out.Reassemble())
		if err != nil {
			return workspace.Item{}, werrors.UnexpectedError(err, "persist pipeline %q step %q", p.Name, step)
		}
		current = next
	}

	return current, nil
}

// TranscribeFormatSummarizeAnnotate mirrors a common compound pipeline:
// clean up a raw transcript, reflow its paragraphs, summarize it, then
// backfill timestamp citations from the original transcript.
var TranscribeFormatSummarizeAnnotate = Pipeline{
	Name:  "transcribe_format_summarize_annotate",
	Steps: []Name{Transcribe, ReformatParagraphs, Summarize, AnnotateTimestamps},
}
