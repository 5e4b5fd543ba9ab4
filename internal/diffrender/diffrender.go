// Package diffrender renders a tokendiff.TokenDiff as a terminal table:
// one row per DiffOp, colored by action the way the source diff visualizer
// colors its op symbols.
package diffrender

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"weft/internal/tokendiff"
)

// opColor returns the color an op's symbol/abbrev renders in, matching
// unified-diff convention: additions green, deletions red, replacements
// yellow, unchanged runs plain.
func opColor(action tokendiff.OpType) *color.Color {
	switch action {
	case tokendiff.Insert:
		return color.New(color.FgGreen)
	case tokendiff.Delete:
		return color.New(color.FgRed)
	case tokendiff.Replace:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Reset)
	}
}

func preview(toks []string, maxRunes int) string {
	s := strings.Join(toks, "")
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "…"
}

// Table writes diff as a table to w, one row per op, equal ops included.
// colorize controls whether the symbols of non-equal ops are ANSI-colored;
// equal ops are never colored.
func Table(w io.Writer, diff tokendiff.TokenDiff, colorize bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Op", "Left toks", "Right toks", "Left", "Right"})
	table.SetAutoWrapText(false)
	table.SetRowLine(true)

	for _, op := range diff.Ops {
		if op.Action == tokendiff.Equal {
			table.Append([]string{op.Action.Abbrev(), strconv.Itoa(len(op.Left)), strconv.Itoa(len(op.Right)), preview(op.Left, 40), preview(op.Right, 40)})
			continue
		}
		symbol := op.Action.Abbrev()
		if colorize {
			symbol = opColor(op.Action).Sprint(symbol)
		}
		table.Append([]string{symbol, strconv.Itoa(len(op.Left)), strconv.Itoa(len(op.Right)), preview(op.Left, 40), preview(op.Right, 40)})
	}

	table.Render()
}

// Summary renders a single colored one-line stats summary, e.g. for use
// above a Table or standalone.
func Summary(diff tokendiff.TokenDiff, colorize bool) string {
	stats := diff.Stats()
	added := strconv.Itoa(stats.Added)
	removed := strconv.Itoa(stats.Removed)
	if colorize {
		added = color.New(color.FgGreen).Sprintf("+%s", added)
		removed = color.New(color.FgRed).Sprintf("-%s", removed)
	} else {
		added = "+" + added
		removed = "-" + removed
	}
	return added + "/" + removed + " out of " + strconv.Itoa(stats.InputSize) + " total"
}
