// Package tiktoken counts subword tokens the way a GPT-family model would,
// for use as the "tiktokens" text size unit.
package tiktoken

import (
	"fmt"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding used for OpenAI GPT-4/3.5-class models.
const DefaultEncoding = "cl100k_base"

// Counter wraps a tiktoken-go encoding.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// NewCounter builds a Counter for the named encoding, e.g. "cl100k_base" or
// "o200k_base".
func NewCounter(encodingName string) (*Counter, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: unknown encoding %q: %w", encodingName, err)
	}
	return &Counter{encoding: enc}, nil
}

// Len returns the token count of text.
func (c *Counter) Len(text string) int {
	if text == "" {
		return 0
	}
	return len(c.encoding.Encode(text, nil, nil))
}

var (
	defaultOnce    sync.Once
	defaultCounter *Counter
	defaultErr     error
)

// Len returns the tiktoken length of text using the default cl100k_base
// encoding, lazily initialized and shared across callers.
func Len(text string) int {
	defaultOnce.Do(func() {
		defaultCounter, defaultErr = NewCounter(DefaultEncoding)
	})
	if defaultErr != nil {
		// The default encoding is a fixed, known-good name; a failure here
		// means the embedded encoder tables are unavailable. Fall back to a
		// rough estimate of one token per four bytes rather than panicking
		// mid-pipeline.
		return len(text) / 4
	}
	return defaultCounter.Len(text)
}
