// Package sentsplit splits paragraph text into sentences, offering a fast
// regex heuristic and a slower NLP-model-backed splitter behind one
// interface so callers can pick a tradeoff between speed and accuracy.
package sentsplit

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
)

// Splitter is the name of a configured splitter strategy.
type Splitter string

const (
	// Fast uses a conservative regex heuristic, fine for most English prose.
	Fast Splitter = "fast"
	// NLP uses a trained Punkt-style sentence tokenizer for better accuracy
	// on ambiguous abbreviations and edge cases.
	NLP Splitter = "nlp"
)

// sentenceRE matches a word ending a sentence: two-or-more letters with a
// lowercase final letter, followed by a terminal punctuation mark, with an
// optional surrounding quote or parenthesis.
var sentenceRE = regexp.MustCompile(`\p{L}+\p{Ll}([.?!]['"’”)]?|['"’”)][.?!])$`)

// minSentenceLength avoids breaking on very short fragments.
const minSentenceLength = 15

// HeuristicEndOfSentence reports whether word plausibly ends a sentence.
func HeuristicEndOfSentence(word string) bool {
	return sentenceRE.MatchString(word)
}

// SplitFast splits text into sentences using a fast regex heuristic. It is
// deliberately conservative, favoring too few breaks over too many.
func SplitFast(text string) []string {
	words := strings.Fields(text)
	var out []string
	var cur []string
	wordsLen := 0
	for _, w := range words {
		cur = append(cur, w)
		wordsLen += len(w)
		sentenceLen := wordsLen + len(cur) - 1
		if HeuristicEndOfSentence(w) && sentenceLen >= minSentenceLength {
			out = append(out, strings.Join(cur, " "))
			cur = nil
			wordsLen = 0
		}
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}

var nlpTokenizer = sentences.NewSentenceTokenizer(nil)

// SplitNLP splits text using a trained sentence tokenizer, falling back to
// SplitFast if the tokenizer cannot be constructed.
func SplitNLP(text string) []string {
	if nlpTokenizer == nil {
		return SplitFast(text)
	}
	sents := nlpTokenizer.Tokenize(text)
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return SplitFast(text)
	}
	return out
}

// Split dispatches to the named splitter strategy.
func Split(text string, which Splitter) []string {
	switch which {
	case NLP:
		return SplitNLP(text)
	default:
		return SplitFast(text)
	}
}
