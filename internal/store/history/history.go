package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"kbaudit/internal/models"
)

// Store keeps analysis-run summaries in a local sqlite file.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the history database. Use
// ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			total INTEGER NOT NULL,
			mark_obsolete INTEGER NOT NULL,
			deletions INTEGER NOT NULL,
			fix_company INTEGER NOT NULL,
			fix_product INTEGER NOT NULL,
			report_path TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) RecordRun(ctx context.Context, run *models.RunSummary) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs
			(run_id, started_at, finished_at, total, mark_obsolete, deletions, fix_company, fix_product, report_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID.String(),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Total,
		run.MarkObsolete,
		run.Deletions,
		run.FixCompany,
		run.FixProduct,
		run.ReportPath,
	)
	if err != nil {
		return fmt.Errorf("record analysis run: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, started_at, finished_at, total, mark_obsolete, deletions, fix_company, fix_product, report_path
		FROM analysis_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var (
			run        models.RunSummary
			runID      string
			startedAt  string
			finishedAt string
		)
		if err := rows.Scan(&run.ID, &runID, &startedAt, &finishedAt, &run.Total,
			&run.MarkObsolete, &run.Deletions, &run.FixCompany, &run.FixProduct, &run.ReportPath); err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		if run.RunID, err = uuid.Parse(runID); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", runID, err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", startedAt, err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finishedAt, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis runs: %w", err)
	}
	return runs, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
