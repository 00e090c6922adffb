package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"kbaudit/internal/models"
)

// StoreImpl implements store.DocumentStore against the chatbot's PostgreSQL
// KB database.
type StoreImpl struct {
	db *pgxpool.Pool
}

// NewDocumentStore connects to the KB database.
func NewDocumentStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &StoreImpl{db: dbpool}, nil
}

// Ping checks the database connection.
func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection pool.
func (s *StoreImpl) Close() {
	s.db.Close()
}

func (s *StoreImpl) ListCompanyCodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT company_code FROM kb_documents ORDER BY company_code`)
	if err != nil {
		return nil, fmt.Errorf("list company codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan company code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company codes: %w", err)
	}
	return codes, nil
}

func (s *StoreImpl) ListUnapproved(ctx context.Context, companyCode string, limit int) ([]models.Document, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, company_code, product_code, is_approved, is_obsolete
		FROM kb_documents
		WHERE company_code = $1 AND NOT is_approved AND NOT is_obsolete
		ORDER BY created_at, id
		LIMIT $2`, companyCode, limit)
	if err != nil {
		return nil, fmt.Errorf("list unapproved documents for %s: %w", companyCode, err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.CompanyCode, &doc.ProductCode, &doc.IsApproved, &doc.IsObsolete); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (s *StoreImpl) ApproveDocuments(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE kb_documents
		SET is_approved = TRUE, updated_at = NOW()
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("approve documents: %w", err)
	}
	return tag.RowsAffected(), nil
}
