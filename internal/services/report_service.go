package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	"kbaudit/internal/models"
	"kbaudit/internal/store"
)

// ReportService prints, persists and records analysis reports. The JSON
// report file is the run's primary artifact; failing to write it is fatal,
// while a history-recording failure only logs a warning.
type ReportService struct {
	path    string
	history store.RunHistoryStore
}

func NewReportService(path string, history store.RunHistoryStore) *ReportService {
	return &ReportService{path: path, history: history}
}

// Path returns the configured report file location.
func (s *ReportService) Path() string {
	return s.path
}

// Print renders a per-action summary table to stdout.
func (s *ReportService) Print(report *models.Report) {
	fmt.Printf("KB analysis run %s (%d documents)\n\n", report.RunID, report.Total)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Action", "Documents"})
	table.SetBorder(true)
	table.Append([]string{"mark_obsolete", fmt.Sprintf("%d", len(report.MarkObsolete))})
	table.Append([]string{"delete", fmt.Sprintf("%d", len(report.Delete))})
	table.Append([]string{"fix_company", fmt.Sprintf("%d", len(report.FixCompany))})
	table.Append([]string{"fix_product", fmt.Sprintf("%d", len(report.FixProduct))})
	table.Render()

	printBucket := func(title string, highlight *color.Color, entries []models.ReportEntry) {
		if len(entries) == 0 {
			return
		}
		fmt.Println()
		highlight.Printf("%s (%d):\n", title, len(entries))
		for _, e := range entries {
			fmt.Printf("  [%s] %s\n", e.ID, e.Title)
			for _, issue := range e.Issues {
				fmt.Printf("      - %s\n", issue)
			}
			if e.Note != "" {
				fmt.Printf("      review: %s\n", e.Note)
			}
		}
	}

	printBucket("Mark obsolete", color.New(color.FgYellow), report.MarkObsolete)
	printBucket("Delete", color.New(color.FgRed), report.Delete)
	printBucket("Fix company", color.New(color.FgCyan), report.FixCompany)
	printBucket("Fix product", color.New(color.FgCyan), report.FixProduct)
}

// Write persists the report as indented JSON at the configured path.
func (s *ReportService) Write(report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write report to %s: %w", s.path, err)
	}
	log.Infof("Report written to %s", s.path)
	return nil
}

// Record stores a summary of the run in the local history. Errors are
// logged, not returned: a missing history entry does not invalidate the run.
func (s *ReportService) Record(ctx context.Context, report *models.Report, started, finished time.Time) {
	if s.history == nil {
		return
	}
	run := &models.RunSummary{
		RunID:        report.RunID,
		StartedAt:    started,
		FinishedAt:   finished,
		Total:        report.Total,
		MarkObsolete: len(report.MarkObsolete),
		Deletions:    len(report.Delete),
		FixCompany:   len(report.FixCompany),
		FixProduct:   len(report.FixProduct),
		ReportPath:   s.path,
	}
	if err := s.history.RecordRun(ctx, run); err != nil {
		log.Warnf("Failed to record analysis run in history: %v", err)
	}
}
