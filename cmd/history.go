package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		runs, err := appInstance.HistoryStore.ListRuns(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list analysis runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No analysis runs recorded yet.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Run", "Finished", "Total", "Obsolete", "Delete", "Fix Company", "Fix Product"})
		table.SetBorder(true)
		for _, run := range runs {
			table.Append([]string{
				run.RunID.String(),
				run.FinishedAt.Local().Format(time.RFC3339),
				strconv.Itoa(run.Total),
				strconv.Itoa(run.MarkObsolete),
				strconv.Itoa(run.Deletions),
				strconv.Itoa(run.FixCompany),
				strconv.Itoa(run.FixProduct),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
}
