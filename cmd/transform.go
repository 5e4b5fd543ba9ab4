package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weft/internal/actions"
	"weft/internal/sentsplit"
	"weft/internal/sliding"
	"weft/internal/textdoc"
	weftTransform "weft/internal/transform"
)

var transformActionName string

// transformCmd runs a single named action from the registry (spec.md
// §4.6's filtered transform driver, bound to one of §4's named actions)
// over a file and prints the result, the same registry internal/actions
// wires a pipeline's steps through.
var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Run a single named sliding-window action over a text file",
	Long: `Runs one action from the registry (transcribe, reformat_paragraphs,
summarize, annotate_timestamps, caption, insert_frame_captures) over the
given file's contents and prints the resulting text to stdout. Actions
that call an LLM use the configured completion provider; with none
configured, use reformat_paragraphs, which only needs the Markdown
normalizer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		var llm sliding.Transform
		if appInstance.CompletionService != nil {
			llm = weftTransform.LLMTransform{
				Completion: appInstance.CompletionService,
				BuildUser:  promptForAction(transformActionName),
				Splitter:   sentsplit.Fast,
			}.AsSliding()
		} else {
			llm = passthroughTransform
		}

		reg := actions.New(sentsplit.Fast, llm, passthroughTransform)
		doc := textdoc.FromText(string(body), sentsplit.Fast)

		out, err := reg.Run(cmd.Context(), actions.Name(transformActionName), doc, string(body))
		if err != nil {
			return fmt.Errorf("run action %q: %w", transformActionName, err)
		}

		fmt.Println(out.Reassemble())
		return nil
	},
}

// passthroughTransform returns its input unchanged, standing in for the
// transcribe and insert_frame_captures actions' external collaborators
// (a transcription service, a frame-capture service) when none is wired.
func passthroughTransform(_ context.Context, doc textdoc.TextDoc) (textdoc.TextDoc, error) {
	return doc, nil
}

func promptForAction(name string) weftTransform.PromptBuilder {
	switch actions.Name(name) {
	case actions.Summarize:
		return weftTransform.SummarizePrompt
	case actions.Caption:
		return weftTransform.CaptionPrompt
	default:
		return nil
	}
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().StringVar(&transformActionName, "action", string(actions.ReformatParagraphs), "action to run (transcribe, reformat_paragraphs, summarize, annotate_timestamps, caption, insert_frame_captures)")
}
