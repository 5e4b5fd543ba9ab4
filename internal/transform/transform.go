// Package transform adapts an LLM-backed services.CompletionService into
// the sliding.Transform function signature, so an action can hand a whole
// document (or a single window of one) to a model and get a revised
// document back.
package transform

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"weft/internal/sentsplit"
	"weft/internal/services"
	"weft/internal/sliding"
	"weft/internal/store"
	"weft/internal/textdoc"
	"weft/internal/werrors"
)

// PromptBuilder turns a document's plain text into the user message sent
// to the model. Actions supply their own, e.g. "Summarize this in one
// paragraph:\n\n%s" for summarize, or a transcription-cleanup instruction
// for transcribe.
type PromptBuilder func(text string) string

// LLMTransform wraps a services.CompletionService as a sliding.Transform.
// Each call sends the document's reassembled text as a single user turn
// after the configured system prompt, and re-parses the model's reply
// with Splitter.
type LLMTransform struct {
	Completion services.CompletionService
	System     string
	BuildUser  PromptBuilder
	Splitter   sentsplit.Splitter
}

// Transform adapts LLMTransform to sliding.Transform.
func (t LLMTransform) Transform(ctx context.Context, doc textdoc.TextDoc) (textdoc.TextDoc, error) {
	if t.Completion.Status() != store.ProviderStatusActive {
		return textdoc.TextDoc{}, werrors.UnexpectedError(nil, "completion provider %s not active (status %v)", t.Completion.Name(), t.Completion.Status())
	}

	userPrompt := doc.Reassemble()
	if t.BuildUser != nil {
		userPrompt = t.BuildUser(userPrompt)
	}

	messages := []services.ChatMessage{
		{Role: services.ChatMessageRoleUser, Content: userPrompt},
	}
	if t.System != "" {
		messages = append([]services.ChatMessage{
			{Role: services.ChatMessageRoleSystem, Content: t.System},
		}, messages...)
	}

	reply, err := t.Completion.GenerateChatCompletion(ctx, messages)
	if err != nil {
		return textdoc.TextDoc{}, werrors.APIResultError("completion %s/%s failed: %v", t.Completion.Name(), t.Completion.ModelName(), err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return textdoc.TextDoc{}, werrors.APIResultError("completion %s/%s returned an empty reply", t.Completion.Name(), t.Completion.ModelName())
	}

	log.WithField("provider", t.Completion.Name()).
		WithField("model", t.Completion.ModelName()).
		Debug("transform: completion call succeeded")

	splitter := t.Splitter
	if splitter == nil {
		splitter = sentsplit.Fast
	}
	return textdoc.FromText(reply, splitter), nil
}

// AsSliding returns t.Transform bound as a sliding.Transform value.
func (t LLMTransform) AsSliding() sliding.Transform {
	return t.Transform
}

// SummarizePrompt builds the user turn for the summarize action, mirroring
// the one-paragraph instruction the teacher's summary service used.
func SummarizePrompt(text string) string {
	return "Summarize this in one paragraph:\n\n" + text
}

// ReformatParagraphsPrompt asks the model to re-flow a document's existing
// sentences into clearer paragraphs without rewording them.
func ReformatParagraphsPrompt(text string) string {
	return "Reorganize the following text into clearer paragraphs. " +
		"Do not reword, summarize, or drop any sentence; only change " +
		"paragraph breaks:\n\n" + text
}

// CaptionPrompt asks the model to produce a short caption for a window of
// transcript text.
func CaptionPrompt(text string) string {
	return "Write a single short caption (under 12 words) describing what " +
		"is being discussed in this transcript excerpt:\n\n" + text
}

// TranscribeCleanupPrompt asks the model to clean up a raw transcript
// without altering its meaning, so filtering can still diff the result
// against the input.
func TranscribeCleanupPrompt(text string) string {
	return "Clean up filler words and false starts in this transcript " +
		"excerpt. Keep every sentence's meaning and order intact:\n\n" + text
}
