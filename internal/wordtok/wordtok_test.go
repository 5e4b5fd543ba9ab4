package wordtok

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testDoc = `Hello, world!
This is an "example sentence with punctuation.
"Special characters: @#%^&*()"
<span data-timestamp="5.60">Alright, guys.</span>

<span data-timestamp="6.16">Here's the deal.</span>
<span data-timestamp="7.92">You can follow me on my daily workouts.
<span class="citation timestamp-link" data-src="resources/the_time_is_now.resource.yml"
data-timestamp="10.29"><a
href="https://www.youtube.com/">00:10</a></span>`

func TestRawTextToWordtoks(t *testing.T) {
	toks := RawTextToWordtoks(testDoc, true)
	assert.Equal(t, BOFTok, toks[0])
	assert.Equal(t, EOFTok, toks[len(toks)-1])
	assert.Contains(t, toks, "Hello")
	assert.Contains(t, toks, ",")
	assert.Contains(t, toks, SpaceTok)
}

func TestInsertParaWordtoks(t *testing.T) {
	withPara := RawTextToWordtoks(InsertParaWordtoks(testDoc), true)
	found := false
	for _, tok := range withPara {
		if tok == ParaBreakTok {
			found = true
		}
	}
	assert.True(t, found, "expected a paragraph break token")
}

func TestJoinWordtoksRoundTrip(t *testing.T) {
	toks := RawTextToWordtoks(testDoc, false)
	assert.Equal(t, testDoc, JoinWordtoks(toks))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, SpaceTok, Normalize("   "))
	assert.Equal(t, SpaceTok, Normalize("\n\n"))
	assert.Equal(t, `<span data-timestamp="5.60">`, Normalize(`<span   data-timestamp="5.60">`))
	assert.Equal(t, "word", Normalize("word"))
}

func TestIsWordIsTag(t *testing.T) {
	assert.True(t, IsWord("Hello"))
	assert.False(t, IsWord(","))
	assert.True(t, IsTag(`<span data-timestamp="5.60">`))
	assert.False(t, IsTag("Hello"))
	assert.True(t, IsTagClose("</span>"))
	assert.False(t, IsTagClose(`<span data-timestamp="5.60">`))
}

func TestIsBreakOrSpace(t *testing.T) {
	assert.True(t, IsBreakOrSpace(ParaBreakTok))
	assert.True(t, IsBreakOrSpace(SentBreakTok))
	assert.True(t, IsBreakOrSpace(" "))
	assert.False(t, IsBreakOrSpace("word"))
}

func TestFirstWordtokIsDiv(t *testing.T) {
	assert.True(t, FirstWordtokIsDiv("<div class=\"x\">hello</div>"))
	assert.False(t, FirstWordtokIsDiv("hello <div>world</div>"))
}

func TestVisualize(t *testing.T) {
	toks := []string{BOFTok, "Hello", EOFTok}
	viz := Visualize(toks)
	assert.True(t, strings.HasPrefix(viz, SymbolSep))
	assert.True(t, strings.HasSuffix(viz, SymbolSep))
}
