package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	log "github.com/sirupsen/logrus"

	"weft/internal/actions"
	"weft/internal/sentsplit"
	"weft/internal/workspace"
)

var (
	scheduleCronExpr string
	schedulePipeline string
	scheduleDBPath   string
)

// pipelinesByName mirrors internal/actions' registry pattern, one level
// up: named, reusable Pipeline values a caller selects by string.
var pipelinesByName = map[string]actions.Pipeline{
	actions.TranscribeFormatSummarizeAnnotate.Name: actions.TranscribeFormatSummarizeAnnotate,
}

// scheduleCmd periodically re-runs a saved pipeline across every item in
// the workspace store, the periodic counterpart to a one-off `weft
// transform` call: grounded on the teacher's asynq job queue (which this
// repo still uses for embedding/summarization jobs) but driven by
// robfig/cron directly, since a pipeline re-run is a calendar-scheduled
// sweep rather than a one-shot enqueued task.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Periodically re-run a pipeline over the workspace collection",
	Long: `Starts a cron scheduler that re-runs a named pipeline against the
latest version of every item in the workspace store, on the given cron
expression. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		cronExpr := scheduleCronExpr
		if cronExpr == "" {
			cronExpr = appInstance.Config.Schedule.Cron
		}
		pipelineName := schedulePipeline
		if pipelineName == "" {
			pipelineName = appInstance.Config.Schedule.Pipeline
		}
		dbPath := scheduleDBPath
		if dbPath == "" {
			dbPath = appInstance.Config.Workspace.DBPath
		}
		if dbPath == "" {
			dbPath = "weft-workspace.db"
		}

		pipeline, ok := pipelinesByName[pipelineName]
		if !ok {
			return fmt.Errorf("unknown pipeline %q", pipelineName)
		}
		if cronExpr == "" {
			return fmt.Errorf("no cron expression configured (set --cron or schedule.cron)")
		}

		store, err := workspace.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open workspace store: %w", err)
		}
		defer store.Close()

		reg := actions.New(sentsplit.Fast, passthroughTransform, passthroughTransform)

		c := cron.New()
		_, err = c.AddFunc(cronExpr, func() {
			runPipelineSweep(cmd.Context(), store, reg, pipeline)
		})
		if err != nil {
			return fmt.Errorf("register cron schedule %q: %w", cronExpr, err)
		}

		log.WithField("cron", cronExpr).WithField("pipeline", pipeline.Name).Info("schedule: starting cron scheduler")
		c.Start()
		defer c.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("schedule: shutting down")
		return nil
	},
}

// runPipelineSweep runs pipeline over every item in store, logging and
// continuing past any single item's failure rather than aborting the
// whole sweep.
func runPipelineSweep(ctx context.Context, store *workspace.Store, reg actions.Registry, pipeline actions.Pipeline) {
	items, err := store.LatestAll(ctx)
	if err != nil {
		log.WithError(err).Error("schedule: failed to list workspace items")
		return
	}

	for _, item := range items {
		if _, err := actions.Run(ctx, reg, store, pipeline, item); err != nil {
			log.WithField("item", item.ID).WithError(err).Warn("schedule: pipeline run failed for item")
		}
	}
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().StringVar(&scheduleCronExpr, "cron", "", "cron expression (defaults to schedule.cron config)")
	scheduleCmd.Flags().StringVar(&schedulePipeline, "pipeline", "", "pipeline name to run (defaults to schedule.pipeline config)")
	scheduleCmd.Flags().StringVar(&scheduleDBPath, "db", "", "path to the workspace SQLite database (defaults to workspace.db_path config)")
}
