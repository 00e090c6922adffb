package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbaudit/internal/models"
)

// --- Fake document store ---

type fakeDocumentStore struct {
	codes       []string
	unapproved  map[string][]models.Document
	approvedIDs [][]string
	listErr     error
}

func (f *fakeDocumentStore) Ping(ctx context.Context) error { return nil }
func (f *fakeDocumentStore) Close()                         {}

func (f *fakeDocumentStore) ListCompanyCodes(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.codes, nil
}

func (f *fakeDocumentStore) ListUnapproved(ctx context.Context, companyCode string, limit int) ([]models.Document, error) {
	docs := f.unapproved[companyCode]
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (f *fakeDocumentStore) ApproveDocuments(ctx context.Context, ids []string) (int64, error) {
	f.approvedIDs = append(f.approvedIDs, ids)
	return int64(len(ids)), nil
}

func TestApprovalService_ApproveAll(t *testing.T) {
	fake := &fakeDocumentStore{
		codes: []string{"RESO", "SOGAZ"},
		unapproved: map[string][]models.Document{
			"SOGAZ": {
				{ID: "s1", CompanyCode: "SOGAZ"},
				{ID: "s2", CompanyCode: "SOGAZ"},
				{ID: "s3", CompanyCode: "SOGAZ"},
			},
			"RESO": {
				{ID: "r1", CompanyCode: "RESO"},
			},
		},
	}

	svc := NewApprovalService(fake, 2)
	approved, err := svc.ApproveAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"RESO": 1, "SOGAZ": 2}, approved,
		"only the first N per company are approved")
	require.Len(t, fake.approvedIDs, 2)
	assert.Equal(t, []string{"r1"}, fake.approvedIDs[0])
	assert.Equal(t, []string{"s1", "s2"}, fake.approvedIDs[1])
}

func TestApprovalService_ApproveAll_NothingPending(t *testing.T) {
	fake := &fakeDocumentStore{codes: []string{"VSK"}}

	svc := NewApprovalService(fake, 5)
	approved, err := svc.ApproveAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"VSK": 0}, approved)
	assert.Empty(t, fake.approvedIDs, "no update issued when nothing is pending")
}

func TestApprovalService_ApproveAll_ListFailure(t *testing.T) {
	fake := &fakeDocumentStore{listErr: errors.New("db down")}

	svc := NewApprovalService(fake, 5)
	_, err := svc.ApproveAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
