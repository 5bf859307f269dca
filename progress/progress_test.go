package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateAndSnapshot(t *testing.T) {
	ctx, tracker := WithNewTracker(context.Background(), "run-1", "deploy", nil)
	tracker.Update(Delta{Total: 3})
	UpdateCtx(ctx, Delta{Running: 1})
	UpdateCtx(ctx, Delta{Running: -1, Completed: 1})
	UpdateCtx(ctx, Delta{Skipped: 1})
	UpdateCtx(ctx, Delta{Failed: 1})

	snapshot := tracker.Snapshot()
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, "deploy", snapshot.Workflow)
	assert.Equal(t, 3, snapshot.TotalSteps)
	assert.Equal(t, 1, snapshot.CompletedSteps)
	assert.Equal(t, 1, snapshot.SkippedSteps)
	assert.Equal(t, 1, snapshot.FailedSteps)
	assert.Equal(t, 0, snapshot.RunningSteps)
}

func TestOnChange(t *testing.T) {
	var updates []int
	_, tracker := WithNewTracker(context.Background(), "run-1", "deploy", func(p Progress) {
		updates = append(updates, p.CompletedSteps)
	})
	tracker.Update(Delta{Completed: 1})
	tracker.Update(Delta{Completed: 1})
	assert.Equal(t, []int{1, 2}, updates)

	tracker.OnChange(nil)
	tracker.Update(Delta{Completed: 1})
	assert.Equal(t, []int{1, 2}, updates)
}

func TestNilTracker(t *testing.T) {
	var tracker *Progress
	assert.NotPanics(t, func() {
		tracker.Update(Delta{Total: 1})
		tracker.OnChange(nil)
	})
	assert.Equal(t, Progress{}, tracker.Snapshot())

	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	UpdateCtx(context.Background(), Delta{Total: 1})
}
