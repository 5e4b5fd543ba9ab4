package sliding

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/tokendiff"
	"weft/internal/werrors"
	"weft/internal/wordtok"
)

// Transform is the external collaborator spec.md §6 names: a function
// taking one document and returning a revised one. It is the only place
// an LLM or other heavy computation enters the core.
type Transform func(ctx context.Context, doc textdoc.TextDoc) (textdoc.TextDoc, error)

// RejectHook is called once per window that had rejected changes, so the
// caller can log or inspect what the filter dropped. May be nil.
type RejectHook func(windowIndex int, rejected tokendiff.TokenDiff)

// DriverOptions configures Run.
type DriverOptions struct {
	// Windowing is nil to apply Transform directly with no chunking.
	Windowing *Settings
	// Filter, if non-nil, splits each window's diff into accepted/rejected
	// halves and applies only the accepted half. Nil means accept the
	// transform's output unfiltered.
	Filter tokendiff.DiffFilter
	// Splitter is used whenever a window or the final output must be
	// re-parsed into sentences.
	Splitter sentsplit.Splitter
	// AlignOpts tunes the overlap search used to stitch window outputs.
	// Zero value resolves to tokendiff.DefaultAlignOptions().
	AlignOpts tokendiff.AlignOptions
	// OnReject, if set, is invoked for every window with a non-empty
	// rejected diff.
	OnReject RejectHook
}

// Run applies transform to doc, directly if opts.Windowing is nil, or
// across a sliding-window pass otherwise: each window is transformed,
// diffed against its input, optionally filtered, and stitched onto the
// accumulating output by minimum-edit-distance alignment (spec.md §4.6).
func Run(ctx context.Context, doc textdoc.TextDoc, transform Transform, opts DriverOptions) (textdoc.TextDoc, error) {
	if opts.Windowing == nil {
		return transform(ctx, doc)
	}
	if err := opts.Windowing.Validate(); err != nil {
		return textdoc.TextDoc{}, err
	}

	alignOpts := opts.AlignOpts
	if alignOpts.GiveUpCount == 0 && alignOpts.GiveUpScore == 0 {
		alignOpts = tokendiff.DefaultAlignOptions()
	}

	stripped := stripWindowBreaks(doc, opts.Splitter)
	windows, err := Windows(stripped, opts.Splitter, *opts.Windowing)
	if err != nil {
		return textdoc.TextDoc{}, err
	}

	var outputWordtoks []string
	for i, win := range windows {
		if err := ctx.Err(); err != nil {
			return textdoc.TextDoc{}, err
		}

		newWin, err := transform(ctx, win)
		if err != nil {
			return textdoc.TextDoc{}, err
		}

		windowOutput, err := filterWindow(win, newWin, opts.Filter, i, opts.OnReject)
		if err != nil {
			return textdoc.TextDoc{}, err
		}

		if i == 0 {
			outputWordtoks = windowOutput
			continue
		}

		stitched, err := stitch(outputWordtoks, windowOutput, *opts.Windowing, alignOpts, i)
		if err != nil {
			return textdoc.TextDoc{}, err
		}
		if stitched == nil {
			// stitch signaled a skippable alignment failure on the new
			// window; keep the previous output and move on.
			continue
		}
		outputWordtoks = stitched
	}

	return textdoc.FromWordtoks(outputWordtoks, opts.Splitter), nil
}

// filterWindow diffs a window's input against the transform's output,
// optionally restricting the change to what the filter accepts, and logs
// accepted/rejected stats at Info per spec.md §2's driver logging.
func filterWindow(win, newWin textdoc.TextDoc, filter tokendiff.DiffFilter, index int, onReject RejectHook) ([]string, error) {
	oldToks := win.AsWordtoks(false)
	newToks := newWin.AsWordtoks(false)
	diff := tokendiff.DiffWordtoks(oldToks, newToks)

	if filter == nil {
		log.WithField("window", index).WithField("stats", diff.Stats().String()).Info("sliding: window transformed (unfiltered)")
		return newToks, nil
	}

	accepted, rejected := diff.Filter(filter)
	applied, err := accepted.ApplyTo(oldToks)
	if err != nil {
		return nil, werrors.UnexpectedError(err, "apply accepted diff for window %d", index)
	}

	log.WithField("window", index).
		WithField("accepted", accepted.Stats().String()).
		WithField("rejected", rejected.Stats().String()).
		Info("sliding: window transformed and filtered")

	if rejected.Stats().NChanges() > 0 {
		log.WithField("window", index).Warn("sliding: dropped changes rejected by filter")
		if onReject != nil {
			onReject(index, rejected)
		}
	}
	return applied, nil
}

// stitch splices windowOutput onto the tail of output by minimum-edit-
// distance alignment. A nil, nil return means the new window's output was
// too short to search for alignment and should be skipped with a warning;
// output being too short is a fatal precondition violation.
func stitch(output, windowOutput []string, settings Settings, alignOpts tokendiff.AlignOptions, index int) ([]string, error) {
	if settings.MinOverlap == 0 {
		// Paragraph windows (and any zero-overlap configuration) join
		// directly: there is no overlap region to search for.
		return joinDirect(output, windowOutput, settings.Separator), nil
	}

	if len(output) < settings.MinOverlap {
		return nil, werrors.UnexpectedError(nil, "accumulated output too short (%d wordtoks) for min_overlap %d at window %d", len(output), settings.MinOverlap, index)
	}
	if len(windowOutput) < settings.MinOverlap {
		log.WithField("window", index).Warn("sliding: window output too short for alignment search, skipping")
		return nil, nil
	}

	offset, _, err := tokendiff.FindBestAlignment(output, windowOutput, settings.MinOverlap, alignOpts)
	if err != nil {
		return nil, werrors.UnexpectedError(err, "find alignment for window %d", index)
	}

	stitched := append([]string{}, output[:offset]...)
	if settings.Separator != "" {
		stitched = append(stitched, settings.Separator)
	}
	stitched = append(stitched, windowOutput...)
	return stitched, nil
}

func joinDirect(output, windowOutput []string, separator string) []string {
	joined := append([]string{}, output...)
	if separator != "" {
		// Bracket the separator with paragraph breaks so it lands on its
		// own paragraph instead of fusing onto the neighboring sentence
		// once the wordtoks are reassembled into text.
		joined = append(joined, wordtok.ParaBreakTok, separator, wordtok.ParaBreakTok)
	}
	return append(joined, windowOutput...)
}

// stripWindowBreaks removes any separator markers left by a previous
// sliding pass so repeated passes don't accumulate them (spec.md §4.6
// step 2).
func stripWindowBreaks(doc textdoc.TextDoc, splitter sentsplit.Splitter) textdoc.TextDoc {
	text := doc.Reassemble()
	if !strings.Contains(text, WindowBreakMarker) {
		return doc
	}
	cleaned := strings.ReplaceAll(text, WindowBreakMarker, "")
	return textdoc.FromText(cleaned, splitter)
}
