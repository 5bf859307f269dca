package progress

import (
	"context"
	"sync"
	"time"

	"github.com/stepline/stepline/internal/clock"
)

// Delta represents an incremental counter change emitted by the engine. The
// fields are signed so they can either increment or decrement.
type Delta struct {
	Total     int
	Completed int
	Skipped   int
	Failed    int
	Running   int
}

// Progress keeps aggregated step counters for one workflow run. It is safe
// for concurrent use.
type Progress struct {
	// Identification, filled when the run starts.
	RunID     string
	Workflow  string
	StartedAt time.Time

	// Counters, modified via Update.
	TotalSteps     int
	CompletedSteps int
	SkippedSteps   int
	FailedSteps    int
	RunningSteps   int

	mu       sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta. When an onChange callback is
// registered it is invoked with a copy of the updated tracker outside the
// critical section, so slow callbacks do not block the engine.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.TotalSteps += d.Total
	p.CompletedSteps += d.Completed
	p.SkippedSteps += d.Skipped
	p.FailedSteps += d.Failed
	p.RunningSteps += d.Running
	snapshot := p.snapshotLocked()
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Progress) snapshotLocked() Progress {
	return Progress{
		RunID:          p.RunID,
		Workflow:       p.Workflow,
		StartedAt:      p.StartedAt,
		TotalSteps:     p.TotalSteps,
		CompletedSteps: p.CompletedSteps,
		SkippedSteps:   p.SkippedSteps,
		FailedSteps:    p.FailedSteps,
		RunningSteps:   p.RunningSteps,
	}
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables the callback; only one callback can be active.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker for the given run, embeds it in a derived
// context and returns both.
func WithNewTracker(ctx context.Context, runID, workflow string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tracker := &Progress{
		RunID:     runID,
		Workflow:  workflow,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tracker), tracker
}

// FromContext extracts the tracker from ctx; the second return value is
// false when the context carries none.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tracker, ok := ctx.Value(trackerKey).(*Progress)
	return tracker, ok
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tracker, ok := FromContext(ctx); ok {
		tracker.Update(d)
	}
}
