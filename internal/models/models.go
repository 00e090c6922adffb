package models

import (
	"time"

	"github.com/google/uuid"

	"kbaudit/pkg/classifier"
)

// Document mirrors the KB document metadata served by the chatbot backend.
// The JSON tags match the backend's camelCase wire format; the db tags match
// the kb_documents table used by the approval flow.
type Document struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	CompanyCode string `json:"companyCode" db:"company_code"`
	ProductCode string `json:"productCode" db:"product_code"`
	IsApproved  bool   `json:"isApproved" db:"is_approved"`
	IsObsolete  bool   `json:"isObsolete" db:"is_obsolete"`
}

// ToClassifier converts the wire/db shape into the classifier's input type.
func (d Document) ToClassifier() classifier.Document {
	return classifier.Document{
		ID:          d.ID,
		Title:       d.Title,
		CompanyCode: d.CompanyCode,
		ProductCode: d.ProductCode,
		IsApproved:  d.IsApproved,
		IsObsolete:  d.IsObsolete,
	}
}

// ReportEntry is one flagged document inside a report bucket.
type ReportEntry struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Issues []string `json:"issues"`
	// Note carries the optional LLM reviewer comment. It never affects the
	// recommended actions.
	Note string `json:"note,omitempty"`
}

// Report is the persisted result of one analysis run: a timestamp, the total
// document count and one bucket per recommended action.
type Report struct {
	RunID        uuid.UUID     `json:"run_id"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Total        int           `json:"total"`
	MarkObsolete []ReportEntry `json:"mark_obsolete"`
	Delete       []ReportEntry `json:"delete"`
	FixCompany   []ReportEntry `json:"fix_company"`
	FixProduct   []ReportEntry `json:"fix_product"`
}

// Bucket returns the report bucket for an action, or nil for an unknown one.
func (r *Report) Bucket(a classifier.Action) []ReportEntry {
	switch a {
	case classifier.ActionMarkObsolete:
		return r.MarkObsolete
	case classifier.ActionDelete:
		return r.Delete
	case classifier.ActionFixCompany:
		return r.FixCompany
	case classifier.ActionFixProduct:
		return r.FixProduct
	}
	return nil
}

// AddToBucket appends an entry to the bucket for the given action.
func (r *Report) AddToBucket(a classifier.Action, e ReportEntry) {
	switch a {
	case classifier.ActionMarkObsolete:
		r.MarkObsolete = append(r.MarkObsolete, e)
	case classifier.ActionDelete:
		r.Delete = append(r.Delete, e)
	case classifier.ActionFixCompany:
		r.FixCompany = append(r.FixCompany, e)
	case classifier.ActionFixProduct:
		r.FixProduct = append(r.FixProduct, e)
	}
}

// Flagged returns the number of bucket entries across all four actions. A
// document recommended for several actions is counted once per bucket.
func (r *Report) Flagged() int {
	return len(r.MarkObsolete) + len(r.Delete) + len(r.FixCompany) + len(r.FixProduct)
}

// RunSummary is one row of the local analysis-run history.
type RunSummary struct {
	ID           int64     `db:"id" json:"id"`
	RunID        uuid.UUID `db:"run_id" json:"run_id"`
	StartedAt    time.Time `db:"started_at" json:"started_at"`
	FinishedAt   time.Time `db:"finished_at" json:"finished_at"`
	Total        int       `db:"total" json:"total"`
	MarkObsolete int       `db:"mark_obsolete" json:"mark_obsolete"`
	Deletions    int       `db:"deletions" json:"deletions"`
	FixCompany   int       `db:"fix_company" json:"fix_company"`
	FixProduct   int       `db:"fix_product" json:"fix_product"`
	ReportPath   string    `db:"report_path" json:"report_path"`
}
