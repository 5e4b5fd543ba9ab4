package textdoc

import (
	"fmt"
	"strings"

	"weft/internal/tiktoken"
	"weft/internal/wordtok"
)

// TextUnit is a unit of measure for text size.
type TextUnit string

const (
	Bytes      TextUnit = "bytes"
	Chars      TextUnit = "chars"
	Words      TextUnit = "words"
	Wordtoks   TextUnit = "wordtoks"
	Paragraphs TextUnit = "paragraphs"
	Sentences  TextUnit = "sentences"
	Tiktokens  TextUnit = "tiktokens"
)

// SizeInBytes returns the UTF-8 byte length of text.
func SizeInBytes(text string) int {
	return len(text)
}

// SizeInWordtoks returns the wordtok count of text.
func SizeInWordtoks(text string) int {
	return len(wordtok.RawTextToWordtoks(text, false))
}

// Size measures text in the given unit. Paragraphs and sentences are not
// meaningful for a bare string and are rejected; use Paragraph/TextDoc's
// Size methods for those.
func Size(text string, unit TextUnit) (int, error) {
	switch unit {
	case Bytes:
		return SizeInBytes(text), nil
	case Chars:
		return len([]rune(text)), nil
	case Words:
		return len(strings.Fields(text)), nil
	case Wordtoks:
		return SizeInWordtoks(text), nil
	case Tiktokens:
		return tiktoken.Len(text), nil
	default:
		return 0, fmt.Errorf("unsupported unit for string: %s", unit)
	}
}
