package transform

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weft/internal/sentsplit"
	"weft/internal/services"
	"weft/internal/store"
	"weft/internal/textdoc"
)

type fakeCompletion struct {
	status  store.ProviderStatus
	reply   string
	err     error
	lastMsg []services.ChatMessage
}

func (f *fakeCompletion) GenerateChatCompletion(ctx context.Context, messages []services.ChatMessage) (string, error) {
	f.lastMsg = messages
	return f.reply, f.err
}
func (f *fakeCompletion) Status() store.ProviderStatus { return f.status }
func (f *fakeCompletion) Name() string                 { return "fake" }
func (f *fakeCompletion) ModelName() string            { return "fake-model" }

var _ services.CompletionService = (*fakeCompletion)(nil)

func TestLLMTransformSendsSystemAndUserTurns(t *testing.T) {
	fc := &fakeCompletion{status: store.ProviderStatusActive, reply: "Rewritten text."}
	tr := LLMTransform{Completion: fc, System: "Be terse.", BuildUser: SummarizePrompt, Splitter: sentsplit.Fast}

	doc := textdoc.FromText("Original text here.", sentsplit.Fast)
	out, err := tr.Transform(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Rewritten text.", out.Reassemble())

	require.Len(t, fc.lastMsg, 2)
	assert.Equal(t, services.ChatMessageRoleSystem, fc.lastMsg[0].Role)
	assert.Equal(t, services.ChatMessageRoleUser, fc.lastMsg[1].Role)
	assert.True(t, strings.Contains(fc.lastMsg[1].Content, "Summarize this in one paragraph"))
}

func TestLLMTransformRejectsInactiveProvider(t *testing.T) {
	fc := &fakeCompletion{status: store.ProviderStatusDisabled}
	tr := LLMTransform{Completion: fc}
	_, err := tr.Transform(context.Background(), textdoc.FromText("hi.", sentsplit.Fast))
	assert.Error(t, err)
}

func TestLLMTransformRejectsEmptyReply(t *testing.T) {
	fc := &fakeCompletion{status: store.ProviderStatusActive, reply: "   "}
	tr := LLMTransform{Completion: fc}
	_, err := tr.Transform(context.Background(), textdoc.FromText("hi.", sentsplit.Fast))
	assert.Error(t, err)
}
