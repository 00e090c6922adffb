package store

import (
	"context"

	"kbaudit/internal/models"
)

// DocumentStore is the direct database view of the chatbot's KB documents,
// used by the approval flow and diagnostics. Read paths for analysis go
// through the backend HTTP API instead.
type DocumentStore interface {
	Ping(ctx context.Context) error
	// ListCompanyCodes returns the distinct company codes present in the KB.
	ListCompanyCodes(ctx context.Context) ([]string, error)
	// ListUnapproved returns up to limit unapproved, non-obsolete documents
	// for one company, oldest first.
	ListUnapproved(ctx context.Context, companyCode string, limit int) ([]models.Document, error)
	// ApproveDocuments marks the given documents approved and returns the
	// number of rows updated.
	ApproveDocuments(ctx context.Context, ids []string) (int64, error)
	Close()
}

// RunHistoryStore records analysis runs locally so past reports can be
// compared and served.
type RunHistoryStore interface {
	RecordRun(ctx context.Context, run *models.RunSummary) error
	ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error)
	Close() error
}
