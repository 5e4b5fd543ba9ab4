// Package mdnorm renders Markdown in a single canonical form so repeated
// normalization passes converge, and splits itemized lists into
// genuinely separate paragraphs (blank-line delimited) so a paragraph
// window sees each list item as its own paragraph.
package mdnorm

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Normalize reparses text as Markdown and re-renders it in canonical
// form: single blank line between block-level elements, list items
// rendered as standalone paragraphs, and a single trailing newline.
// Applying Normalize to its own output is a no-op.
func Normalize(text string) string {
	source := []byte(text)
	doc := md.Parser().Parse(gmtext.NewReader(source))

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, renderBlock(n, source)...)
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// renderBlock renders a single top-level block node, returning one or
// more paragraph-level strings (a list yields one string per item).
func renderBlock(n ast.Node, source []byte) []string {
	switch node := n.(type) {
	case *ast.List:
		var items []string
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, renderListItem(item, source, node.IsOrdered(), node.Start))
		}
		return items
	case *ast.Heading:
		prefix := strings.Repeat("#", node.Level)
		return []string{prefix + " " + inlineText(node, source)}
	case *ast.FencedCodeBlock:
		return []string{"```" + string(node.Language(source)) + "\n" + rawLines(node, source) + "\n```"}
	case *ast.CodeBlock:
		return []string{"    " + strings.ReplaceAll(rawLines(node, source), "\n", "\n    ")}
	case *ast.Blockquote:
		var lines []string
		for _, sub := range renderBlock(node.FirstChild(), source) {
			for _, line := range strings.Split(sub, "\n") {
				lines = append(lines, "> "+line)
			}
		}
		return []string{strings.Join(lines, "\n")}
	default:
		text := inlineText(n, source)
		if text == "" {
			return nil
		}
		return []string{text}
	}
}

func renderListItem(item ast.Node, source []byte, ordered bool, start int) string {
	bullet := "-"
	if ordered {
		bullet = itoaStart(start)
		start++
	}
	var parts []string
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		parts = append(parts, renderBlock(child, source)...)
	}
	body := strings.Join(parts, "\n\n")
	return bullet + " " + body
}

func itoaStart(n int) string {
	digits := []byte{}
	if n == 0 {
		return "0."
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits) + "."
}

func rawLines(n ast.Node, source []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		if node == nil {
			return
		}
		switch tn := node.(type) {
		case *ast.Text:
			b.Write(tn.Segment.Value(source))
			if tn.SoftLineBreak() || tn.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(tn.Value)
		case *ast.CodeSpan:
			b.WriteByte('`')
			for c := tn.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
			b.WriteByte('`')
		case *ast.Emphasis:
			marker := "*"
			if tn.Level == 2 {
				marker = "**"
			}
			b.WriteString(marker)
			for c := tn.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
			b.WriteString(marker)
		case *ast.Link:
			b.WriteByte('[')
			for c := tn.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
			b.WriteString("](")
			b.Write(tn.Destination)
			b.WriteByte(')')
		default:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c)
	}
	return strings.TrimSpace(b.String())
}
