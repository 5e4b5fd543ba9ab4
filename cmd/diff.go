package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weft/internal/diffrender"
	"weft/internal/sentsplit"
	"weft/internal/textdoc"
	"weft/internal/tokendiff"
)

var diffNoColor bool

// diffCmd compares two text files wordtok-by-wordtok and renders the
// result as a table, the way the source diff visualizer renders op
// symbols, using tablewriter/fatih-color instead of the teacher's plain
// fmt.Printf listings.
var diffCmd = &cobra.Command{
	Use:   "diff [old-file] [new-file]",
	Short: "Show the wordtok-level diff between two text files",
	Long: `Tokenizes both files into wordtoks and renders their LCS diff as a
table of EQUAL/INSERT/DELETE/REPLACE ops, the same diff the sliding-window
transform driver computes internally between a window's input and a
transform's output.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldBody, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		newBody, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}

		oldDoc := textdoc.FromText(string(oldBody), sentsplit.Fast)
		newDoc := textdoc.FromText(string(newBody), sentsplit.Fast)
		diff := tokendiff.DiffDocs(oldDoc, newDoc)

		fmt.Println(diffrender.Summary(diff, !diffNoColor))
		diffrender.Table(os.Stdout, diff, !diffNoColor)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&diffNoColor, "no-color", false, "disable colored op symbols")
}
