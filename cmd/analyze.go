package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kbaudit/internal/tasks"
)

var analyzeBackground bool

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify every KB document and write an analysis report",
	Long: `Lists all documents from the chatbot backend, fetches each document's text
with a fixed pause between requests, runs the classification rules, prints a
per-action summary and writes the JSON report file.

With --background the run is enqueued as an asynq task instead; a worker
process (kbaudit worker) picks it up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		if analyzeBackground {
			task, err := tasks.NewAnalysisRunTask(os.Getenv("USER"))
			if err != nil {
				return err
			}
			info, err := appInstance.JobClient.Enqueue(ctx, task)
			if err != nil {
				return fmt.Errorf("failed to enqueue analysis run: %w", err)
			}
			fmt.Printf("Analysis run enqueued (task id: %s). Run 'kbaudit worker' to process it.\n", info.ID)
			return nil
		}

		started := time.Now().UTC()
		report, err := appInstance.AnalysisService.Run(ctx)
		if err != nil {
			return fmt.Errorf("analysis run failed: %w", err)
		}

		appInstance.ReportService.Print(report)

		// The report file is the run's artifact; failing to write it fails
		// the command.
		if err := appInstance.ReportService.Write(report); err != nil {
			return err
		}
		appInstance.ReportService.Record(ctx, report, started, time.Now().UTC())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeBackground, "background", false, "Enqueue the run as a background task instead of running it now")
}
