package run

import (
	"context"
	"testing"
	"time"

	"github.com/OneZee23/calendar-summary/internal/test_utils"
	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *RepositoryImpl {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db)
}

func storedRun(capturedAt time.Time) (Run, []event.CalendarEvent) {
	events := []event.CalendarEvent{
		{Title: "Gym", Date: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local), StartMinutes: 570, EndMinutes: 600, Color: "#3f51b5"},
		{Title: "Run", Date: time.Date(2025, time.January, 11, 0, 0, 0, 0, time.Local), StartMinutes: 1080, EndMinutes: 1125},
	}
	run := Run{
		ID:           uuid.New(),
		CapturedAt:   capturedAt,
		PageURL:      "https://cal.example.com/r/week",
		EventCount:   len(events),
		TotalMinutes: 75,
	}
	return run, events
}

func TestRepositoryImpl_StoreAndGetRun(t *testing.T) {
	// given
	repo := setupTestRepository(t)
	ctx := context.Background()
	run, events := storedRun(time.Date(2025, time.January, 10, 8, 30, 0, 0, time.Local))

	// when
	err := repo.StoreRun(ctx, run, events)
	require.NoError(t, err)
	found, err := repo.GetRun(ctx, run.ID)

	// then
	require.NoError(t, err)
	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, run.CapturedAt.UnixMilli(), found.CapturedAt.UnixMilli())
	assert.Equal(t, run.PageURL, found.PageURL)
	assert.Equal(t, 2, found.EventCount)
	assert.Equal(t, 75, found.TotalMinutes)
}

func TestRepositoryImpl_GetRun_NotFound(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.GetRun(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRepositoryImpl_ListRuns(t *testing.T) {
	// given three runs captured at different times
	repo := setupTestRepository(t)
	ctx := context.Background()
	base := time.Date(2025, time.January, 10, 8, 0, 0, 0, time.Local)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		run, events := storedRun(base.Add(time.Duration(i) * time.Hour))
		require.NoError(t, repo.StoreRun(ctx, run, events))
		ids = append(ids, run.ID)
	}

	// when
	runs, err := repo.ListRuns(ctx, 2)

	// then: newest first, limit applied
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestRepositoryImpl_GetRunEvents(t *testing.T) {
	// given
	repo := setupTestRepository(t)
	ctx := context.Background()
	run, events := storedRun(time.Date(2025, time.January, 10, 8, 30, 0, 0, time.Local))
	require.NoError(t, repo.StoreRun(ctx, run, events))

	// when
	found, err := repo.GetRunEvents(ctx, run.ID)

	// then: events come back sorted by day and start, dates at local midnight
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Gym", found[0].Title)
	assert.Equal(t, "2025-01-10", found[0].Day())
	assert.Equal(t, 570, found[0].StartMinutes)
	assert.Equal(t, 600, found[0].EndMinutes)
	assert.Equal(t, "#3f51b5", found[0].Color)
	assert.Equal(t, "Run", found[1].Title)
	assert.Equal(t, "2025-01-11", found[1].Day())
	assert.Empty(t, found[1].Color)
}

func TestRepositoryImpl_DeleteRun(t *testing.T) {
	// given
	repo := setupTestRepository(t)
	ctx := context.Background()
	run, events := storedRun(time.Date(2025, time.January, 10, 8, 30, 0, 0, time.Local))
	require.NoError(t, repo.StoreRun(ctx, run, events))

	// when
	err := repo.DeleteRun(ctx, run.ID)

	// then: the run is gone and its events went with it
	require.NoError(t, err)
	_, err = repo.GetRun(ctx, run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)
	remaining, err := repo.GetRunEvents(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestRepositoryImpl_DeleteRun_NotFound(t *testing.T) {
	repo := setupTestRepository(t)

	err := repo.DeleteRun(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrRunNotFound)
}
