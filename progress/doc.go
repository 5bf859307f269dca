// Package progress keeps aggregated step counters for a single workflow run.
// The tracker lives in the run's context; every component receiving the
// context can update the counters without a global registry.
package progress
