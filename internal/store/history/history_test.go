package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbaudit/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndListRuns(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	run := &models.RunSummary{
		RunID:        uuid.New(),
		StartedAt:    started,
		FinishedAt:   started.Add(2 * time.Minute),
		Total:        42,
		MarkObsolete: 3,
		Deletions:    5,
		FixCompany:   1,
		FixProduct:   2,
		ReportPath:   "kb-analysis-report.json",
	}

	require.NoError(t, s.RecordRun(ctx, run))
	assert.NotZero(t, run.ID, "RecordRun should backfill the row id")

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.RunID, got.RunID)
	assert.True(t, got.StartedAt.Equal(started))
	assert.Equal(t, 42, got.Total)
	assert.Equal(t, 5, got.Deletions)
	assert.Equal(t, "kb-analysis-report.json", got.ReportPath)
}

func TestStore_ListRuns_NewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := &models.RunSummary{
			RunID:      uuid.New(),
			StartedAt:  time.Now().UTC(),
			FinishedAt: time.Now().UTC(),
			Total:      i,
		}
		require.NoError(t, s.RecordRun(ctx, run))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Total, "most recent run first")
	assert.Equal(t, 1, runs[1].Total)
}

func TestStore_ListRuns_Empty(t *testing.T) {
	s := setupTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
