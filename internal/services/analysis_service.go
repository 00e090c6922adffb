package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kbaudit/internal/models"
	"kbaudit/pkg/classifier"
)

// DocumentFetcher is the slice of the backend API the batch runner needs.
type DocumentFetcher interface {
	ListDocuments(ctx context.Context) ([]models.Document, error)
	GetDocumentContent(ctx context.Context, id string) (string, error)
}

// Reviewer produces an optional human-readable second opinion for a flagged
// document. It must never change the recommended actions.
type Reviewer interface {
	Review(ctx context.Context, doc models.Document, res classifier.Result) (string, error)
}

// AnalysisService runs the full KB audit: list documents, fetch each
// document's text with a fixed pause between requests, classify, and
// aggregate the results into per-action report buckets.
type AnalysisService struct {
	fetcher  DocumentFetcher
	reviewer Reviewer // nil unless review is enabled
	delay    time.Duration
}

func NewAnalysisService(fetcher DocumentFetcher, reviewer Reviewer, delay time.Duration) *AnalysisService {
	return &AnalysisService{
		fetcher:  fetcher,
		reviewer: reviewer,
		delay:    delay,
	}
}

// Run analyzes every document in the KB. A failed content fetch is logged
// and the document is classified with empty content; the run only fails if
// the listing itself fails or the context is cancelled.
func (s *AnalysisService) Run(ctx context.Context) (*models.Report, error) {
	docs, err := s.fetcher.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Total:       len(docs),
	}
	log.Infof("Analyzing %d KB documents (run %s)", len(docs), report.RunID)

	for i, doc := range docs {
		content, err := s.fetcher.GetDocumentContent(ctx, doc.ID)
		if err != nil {
			// The original tooling treats a failed fetch as an empty
			// document rather than skipping it.
			log.Warnf("Failed to fetch content for document %s (%q), classifying as empty: %v", doc.ID, doc.Title, err)
			content = ""
		}

		res := classifier.Classify(doc.ToClassifier(), content)
		if len(res.Actions) > 0 {
			entry := models.ReportEntry{ID: res.ID, Title: res.Title, Issues: res.Issues}
			if s.reviewer != nil {
				if note, err := s.reviewer.Review(ctx, doc, res); err != nil {
					log.Warnf("Review of document %s failed: %v", doc.ID, err)
				} else {
					entry.Note = note
				}
			}
			for _, action := range res.Actions {
				report.AddToBucket(action, entry)
			}
			log.Debugf("Document %s flagged: %v", doc.ID, res.Issues)
		}

		// Pace requests so the backend's rate limits are respected.
		if s.delay > 0 && i < len(docs)-1 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	log.Infof("Analysis complete: %d documents, %d bucket entries", report.Total, report.Flagged())
	return report, nil
}
