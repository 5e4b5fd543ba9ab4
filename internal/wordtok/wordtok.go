// Package wordtok treats text as a sequence of word, punctuation, and
// whitespace tokens ("wordtoks"), plus structural markers for sentence
// and paragraph breaks and beginning/end of file.
package wordtok

import (
	"regexp"
	"strings"
)

// Structural markers. These parse as HTML-tag-like tokens themselves, so
// they can be mixed freely into ordinary wordtok streams.
const (
	SentBreakTok = "<-SENT-BR->"
	ParaBreakTok = "<-PARA-BR->"
	BOFTok       = "<-BOF->"
	EOFTok       = "<-EOF->"

	// SentBreakStr, ParaBreakStr are the literal text a sentence/paragraph
	// break renders as when reassembling a document.
	SentBreakStr = " "
	ParaBreakStr = "\n\n"

	bofStr = ""
	eofStr = ""

	SpaceTok = " "
)

// wordtokPattern breaks on words, single punctuation/other characters, runs
// of whitespace, or HTML-ish tags up to 1024 chars (possibly spanning
// newlines), which are kept whole as a single token.
var wordtokPattern = regexp.MustCompile(`(?s)(<(?:[^<>]|\n){0,1024}>|\w+|[^\w\s]|\s+)`)

var paraBreakPattern = regexp.MustCompile(`\s*\n\n\s*`)

var tagPattern = regexp.MustCompile(`(?s)<.{0,1024}?>`)

var tagClosePattern = regexp.MustCompile(`</[^>]+>`)

var wordPattern = regexp.MustCompile(`^\w+`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// ToStr converts a wordtok to the literal text it stands for.
func ToStr(tok string) string {
	switch tok {
	case SentBreakTok:
		return SentBreakStr
	case ParaBreakTok:
		return ParaBreakStr
	case BOFTok:
		return bofStr
	case EOFTok:
		return eofStr
	default:
		return tok
	}
}

// Len is the character length of a wordtok's rendered text.
func Len(tok string) int {
	return len([]rune(ToStr(tok)))
}

func isAllSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(" \t\n\r\v\f ", r) && !isUnicodeSpace(r) {
			return false
		}
	}
	return true
}

func isUnicodeSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x85, 0xA0:
		return true
	}
	return false
}

// Normalize collapses internal whitespace runs in a wordtok to a single
// space (for tags) or a single space token (for pure whitespace), leaving
// everything else untouched.
func Normalize(tok string) string {
	switch {
	case isAllSpace(tok):
		return SpaceTok
	case strings.HasPrefix(tok, "<"):
		return whitespacePattern.ReplaceAllString(tok, " ")
	default:
		return tok
	}
}

// RawTextToWordtokOffsets tokenizes text into wordtoks, returning each
// token alongside the byte offset in text where it starts. If bofEOF is
// true, BOF/EOF markers are prepended/appended with offsets 0 and len(text).
func RawTextToWordtokOffsets(text string, bofEOF bool) ([]string, []int) {
	matches := wordtokPattern.FindAllStringIndex(text, -1)
	toks := make([]string, 0, len(matches))
	offsets := make([]int, 0, len(matches))
	for _, m := range matches {
		toks = append(toks, Normalize(text[m[0]:m[1]]))
		offsets = append(offsets, m[0])
	}
	if bofEOF {
		toks = append([]string{BOFTok}, toks...)
		toks = append(toks, EOFTok)
		offsets = append([]int{0}, offsets...)
		offsets = append(offsets, len(text))
	}
	return toks, offsets
}

// RawTextToWordtoks converts text to wordtoks: words, whitespace,
// punctuation, and HTML tags. Does not parse paragraph or sentence breaks.
// All whitespace runs are normalized to a single space character.
func RawTextToWordtoks(text string, bofEOF bool) []string {
	toks, _ := RawTextToWordtokOffsets(text, bofEOF)
	return toks
}

// InsertParaWordtoks replaces paragraph breaks in text with the literal
// paragraph-break token, so a subsequent tokenization pass sees them as a
// single wordtok instead of whitespace.
func InsertParaWordtoks(text string) string {
	return paraBreakPattern.ReplaceAllString(text, ParaBreakTok)
}

// FirstWordtokIsDiv reports whether the first wordtok of text (if truncated
// to a reasonable lookahead) is an opening <div> tag.
func FirstWordtokIsDiv(text string) bool {
	maxChars := 100
	if maxChars > len(text) {
		maxChars = len(text)
	}
	toks := RawTextToWordtoks(text[:maxChars], false)
	if len(toks) == 0 {
		return false
	}
	toks = toks[:len(toks)-1] // drop any cut-off token
	if len(toks) == 0 {
		return false
	}
	return IsTag(toks[0]) && strings.Contains(toks[0], "<div")
}

// JoinWordtoks reassembles wordtoks back into text.
func JoinWordtoks(toks []string) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(ToStr(t))
	}
	return b.String()
}

// SymbolSep separates tokens in a debugging visualization.
const SymbolSep = "⎪"

// Visualize renders wordtoks as a debugging string with a separator between
// (and around) each token.
func Visualize(toks []string) string {
	return SymbolSep + strings.Join(toks, SymbolSep) + SymbolSep
}

// IsBreakOrSpace reports whether tok is a paragraph break, sentence break,
// or plain whitespace.
func IsBreakOrSpace(tok string) bool {
	return tok == ParaBreakTok || tok == SentBreakTok || isAllSpace(tok)
}

// IsWord reports whether tok is a word, as opposed to punctuation or
// whitespace.
func IsWord(tok string) bool {
	return wordPattern.MatchString(tok)
}

// IsTag reports whether tok is an HTML-like tag.
func IsTag(tok string) bool {
	loc := tagPattern.FindStringIndex(tok)
	return loc != nil && loc[0] == 0
}

// IsTagClose reports whether tok is an HTML-like closing tag.
func IsTagClose(tok string) bool {
	loc := tagClosePattern.FindStringIndex(tok)
	return loc != nil && loc[0] == 0
}

// IsTagNamed reports whether tok is an opening tag for one of the given
// tag names (e.g. "h1").
func IsTagNamed(tok string, names []string) bool {
	if !IsTag(tok) || IsTagClose(tok) {
		return false
	}
	for _, name := range names {
		if strings.HasPrefix(tok, "<"+name) {
			return true
		}
	}
	return false
}

// IsTagCloseNamed reports whether tok is a closing tag for one of the
// given tag names.
func IsTagCloseNamed(tok string, names []string) bool {
	if !IsTagClose(tok) {
		return false
	}
	for _, name := range names {
		if tok == "</"+name+">" {
			return true
		}
	}
	return false
}
