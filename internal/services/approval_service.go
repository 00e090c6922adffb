package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"kbaudit/internal/store"
)

// ApprovalService makes freshly imported KB documents visible to search. It
// approves the first N unapproved, non-obsolete documents per company code,
// unconditionally; the analysis report is the place for judgment calls.
type ApprovalService struct {
	store      store.DocumentStore
	perCompany int
}

func NewApprovalService(documentStore store.DocumentStore, perCompany int) *ApprovalService {
	if perCompany <= 0 {
		perCompany = 10
	}
	return &ApprovalService{store: documentStore, perCompany: perCompany}
}

// ApproveAll runs the approval pass for every company code present in the
// KB and returns the number of documents approved per code.
func (s *ApprovalService) ApproveAll(ctx context.Context) (map[string]int, error) {
	codes, err := s.store.ListCompanyCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list company codes: %w", err)
	}

	approved := make(map[string]int, len(codes))
	for _, code := range codes {
		docs, err := s.store.ListUnapproved(ctx, code, s.perCompany)
		if err != nil {
			return nil, fmt.Errorf("list unapproved for %s: %w", code, err)
		}
		if len(docs) == 0 {
			approved[code] = 0
			continue
		}

		ids := make([]string, len(docs))
		for i, doc := range docs {
			ids[i] = doc.ID
		}
		count, err := s.store.ApproveDocuments(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("approve documents for %s: %w", code, err)
		}
		approved[code] = int(count)
		log.Infof("Approved %d documents for %s", count, code)
	}
	return approved, nil
}
