package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"kbaudit/internal/services"
)

var approvePerCompany int

// approveCmd represents the approve command
var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve pending KB documents, N per company",
	Long: `Approves the first N unapproved, non-obsolete documents for every company
code directly in the KB database, making them visible to the chatbot's
search. The approval is unconditional; review the analysis report first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}
		if appInstance.DocumentStore == nil {
			return fmt.Errorf("KB database is not configured (set database.kb.dsn or KB_DATABASE_DSN)")
		}

		svc := appInstance.ApprovalService
		if cmd.Flags().Changed("per-company") {
			svc = services.NewApprovalService(appInstance.DocumentStore, approvePerCompany)
		}

		approved, err := svc.ApproveAll(ctx)
		if err != nil {
			return fmt.Errorf("approval pass failed: %w", err)
		}

		codes := make([]string, 0, len(approved))
		for code := range approved {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Company", "Approved"})
		table.SetBorder(true)
		total := 0
		for _, code := range codes {
			table.Append([]string{code, strconv.Itoa(approved[code])})
			total += approved[code]
		}
		table.Render()
		fmt.Printf("Approved %d documents in total.\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(approveCmd)
	approveCmd.Flags().IntVar(&approvePerCompany, "per-company", 10, "Maximum documents to approve per company code")
}
