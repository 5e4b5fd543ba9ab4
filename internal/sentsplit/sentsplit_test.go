package sentsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFast(t *testing.T) {
	text := "This is the first sentence. This is the second sentence! Is this the third?"
	sents := SplitFast(text)
	assert.Len(t, sents, 3)
	assert.Equal(t, "This is the first sentence.", sents[0])
}

func TestSplitFastShortFragmentsDontBreak(t *testing.T) {
	sents := SplitFast("Ok. Go.")
	assert.Len(t, sents, 1)
}

func TestSplitDispatch(t *testing.T) {
	text := "Hello world. Goodbye world."
	assert.Equal(t, SplitFast(text), Split(text, Fast))
	assert.NotEmpty(t, Split(text, NLP))
}
