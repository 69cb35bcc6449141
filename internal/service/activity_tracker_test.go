package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safewatch-data/internal/domain"
)

func newTestTracker(repo *fakeActivitiesRepo) *ActivityTracker {
	return NewActivityTracker(repo, zap.NewNop())
}

func TestTrack_StartsFirstSession(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	tracker := newTestTracker(repo)

	res, err := tracker.Track(context.Background(), "SAFE-001", domain.ActivityWalking, 0.9)

	require.NoError(t, err)
	assert.Equal(t, TrackStarted, res.Status)
	assert.Equal(t, domain.ActivityWalking, res.Current)
	assert.NotEmpty(t, res.IntervalID)

	require.Len(t, repo.intervals, 1)
	assert.Nil(t, repo.intervals[0].EndTime)
	assert.Equal(t, 0.9, repo.intervals[0].Confidence)
}

func TestTrack_SameKindContinuesWithoutMutation(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	first, err := tracker.Track(ctx, "SAFE-001", domain.ActivityWalking, 0.9)
	require.NoError(t, err)

	second, err := tracker.Track(ctx, "SAFE-001", domain.ActivityWalking, 0.4)
	require.NoError(t, err)

	assert.Equal(t, TrackContinued, second.Status)
	assert.Equal(t, first.IntervalID, second.IntervalID)

	// Still exactly one interval, still open, confidence not refreshed.
	require.Len(t, repo.intervals, 1)
	assert.Nil(t, repo.intervals[0].EndTime)
	assert.Equal(t, 0.9, repo.intervals[0].Confidence)
}

func TestTrack_KindChangeClosesAndOpens(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	start := time.Now().Add(-5 * time.Minute)
	tracker.now = func() time.Time { return start }
	_, err := tracker.Track(ctx, "SAFE-001", domain.ActivityWalking, 0.9)
	require.NoError(t, err)

	end := start.Add(5 * time.Minute)
	tracker.now = func() time.Time { return end }
	res, err := tracker.Track(ctx, "SAFE-001", domain.ActivitySitting, 0.8)
	require.NoError(t, err)

	assert.Equal(t, TrackChanged, res.Status)
	assert.Equal(t, domain.ActivityWalking, res.Previous)
	assert.Equal(t, domain.ActivitySitting, res.Current)

	require.Len(t, repo.intervals, 2)
	closed, open := repo.intervals[0], repo.intervals[1]
	require.NotNil(t, closed.EndTime)
	require.NotNil(t, closed.DurationSeconds)
	assert.Equal(t, int64(300), *closed.DurationSeconds)
	assert.Nil(t, open.EndTime)
	assert.Equal(t, domain.ActivitySitting, open.ActivityType)
}

func TestTrack_AtMostOneOpenIntervalAcrossSequences(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	sequence := []domain.ActivityKind{
		domain.ActivityStanding,
		domain.ActivityStanding,
		domain.ActivityWalking,
		domain.ActivitySitting,
		domain.ActivitySitting,
		domain.ActivitySleeping,
		domain.ActivityUnknown,
		domain.ActivityWalking,
	}

	for i, kind := range sequence {
		_, err := tracker.Track(ctx, "SAFE-001", kind, 0.5)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, 1, repo.openCount("SAFE-001"), "step %d", i)
	}

	// Closed intervals all carry a non-negative duration.
	for _, iv := range repo.intervals {
		if iv.EndTime != nil {
			require.NotNil(t, iv.DurationSeconds)
			assert.GreaterOrEqual(t, *iv.DurationSeconds, int64(0))
		}
	}
}

func TestTrack_SessionsAreIndependentPerDevice(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	_, err := tracker.Track(ctx, "SAFE-001", domain.ActivityWalking, 0.9)
	require.NoError(t, err)
	_, err = tracker.Track(ctx, "SAFE-002", domain.ActivitySleeping, 0.9)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.openCount("SAFE-001"))
	assert.Equal(t, 1, repo.openCount("SAFE-002"))
}

func TestTrack_InvalidKindNoMutation(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	tracker := newTestTracker(repo)

	_, err := tracker.Track(context.Background(), "SAFE-001", domain.ActivityKind("running"), 0.5)

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, repo.intervals)
}
