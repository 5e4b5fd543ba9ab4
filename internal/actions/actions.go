// Package actions is a registry of named operations over the sliding
// engine: each action binds a window setting, a diff filter, and a
// transform into one named, reusable unit that a pipeline can chain.
package actions

import (
	"context"

	"weft/internal/mdnorm"
	"weft/internal/provenance"
	"weft/internal/sentsplit"
	"weft/internal/sliding"
	"weft/internal/textdoc"
	"weft/internal/tokendiff"
	"weft/internal/werrors"
)

// Name identifies a registered action.
type Name string

const (
	Transcribe          Name = "transcribe"
	ReformatParagraphs  Name = "reformat_paragraphs"
	Summarize           Name = "summarize"
	AnnotateTimestamps  Name = "annotate_timestamps"
	Caption             Name = "caption"
	InsertFrameCaptures Name = "insert_frame_captures"
)

// Action is one entry in the registry: a sliding-window transform run, or
// (for annotate_timestamps) a non-windowed provenance backfill.
type Action struct {
	Name Name

	// Windowing is nil for actions that don't chunk the document (e.g. a
	// passthrough or a provenance backfill).
	Windowing *sliding.Settings
	Filter    tokendiff.DiffFilter
	Transform sliding.Transform

	// Backfill, when non-nil, makes this action a provenance backfill
	// instead of a sliding-window transform: Run ignores Windowing/Filter/
	// Transform and calls Backfill directly against sourceText.
	Backfill *provenance.BackfillOptions
}

// Registry holds the named actions and the sentence splitter they share
// for re-parsing text.
type Registry struct {
	actions  map[Name]Action
	splitter sentsplit.Splitter
}

// New builds the registry (spec's six named actions) using splitter for
// any action that needs to re-parse text, and llm/passthrough as the
// transforms backing the LLM-driven and pass-through actions.
func New(splitter sentsplit.Splitter, llm sliding.Transform, passthrough sliding.Transform) Registry {
	reg := map[Name]Action{}

	reg[Transcribe] = Action{
		Name:      Transcribe,
		Windowing: nil,
		Filter:    tokendiff.AcceptAll,
		Transform: passthrough,
	}

	paragraphWindow := sliding.Settings{Unit: sliding.Paragraphs, Size: 3, Shift: 3}
	reg[ReformatParagraphs] = Action{
		Name:      ReformatParagraphs,
		Windowing: &paragraphWindow,
		Filter:    tokendiff.AcceptAll,
		Transform: func(ctx context.Context, doc textdoc.TextDoc) (textdoc.TextDoc, error) {
			normalized := mdnorm.Normalize(doc.Reassemble())
			return textdoc.FromText(normalized, splitter), nil
		},
	}

	wordtokWindow := sliding.Settings{Unit: sliding.Wordtoks, Size: 800, Shift: 600, MinOverlap: 20}
	reg[Summarize] = Action{
		Name:      Summarize,
		Windowing: &wordtokWindow,
		Filter:    tokendiff.AcceptAll,
		Transform: llm,
	}

	reg[AnnotateTimestamps] = Action{
		Name:     AnnotateTimestamps,
		Backfill: &provenance.BackfillOptions{Splitter: splitter, MinWordtoks: 5, MaxDiffFrac: 0.5},
	}

	captionWindow := sliding.Settings{Unit: sliding.Paragraphs, Size: 1, Shift: 1}
	reg[Caption] = Action{
		Name:      Caption,
		Windowing: &captionWindow,
		Filter:    tokendiff.AddsHeadings,
		Transform: llm,
	}

	frameWindow := sliding.Settings{Unit: sliding.Paragraphs, Size: 1, Shift: 1}
	reg[InsertFrameCaptures] = Action{
		Name:      InsertFrameCaptures,
		Windowing: &frameWindow,
		Filter:    tokendiff.AcceptAll,
		Transform: passthrough,
	}

	return Registry{actions: reg, splitter: splitter}
}

// Get returns the definition for a named action.
func (r Registry) Get(name Name) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Run executes a named action over doc. sourceText is only used by
// annotate_timestamps, which rediscovers timestamps from the item's
// original (pre-transform) text.
func (r Registry) Run(ctx context.Context, name Name, doc textdoc.TextDoc, sourceText string) (textdoc.TextDoc, error) {
	action, ok := r.actions[name]
	if !ok {
		return textdoc.TextDoc{}, werrors.InvalidInput("unknown action %q", name)
	}

	if action.Backfill != nil {
		return provenance.Backfill(sourceText, doc.Reassemble(), *action.Backfill)
	}

	if action.Transform == nil {
		return textdoc.TextDoc{}, werrors.InvalidInput("action %q has no transform configured", name)
	}

	opts := sliding.DriverOptions{
		Windowing: action.Windowing,
		Filter:    action.Filter,
		Splitter:  r.splitter,
	}
	return sliding.Run(ctx, doc, action.Transform, opts)
}
