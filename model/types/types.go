// Package types defines the function signatures and error taxonomy shared
// between the workflow model and the execution engine.
package types

import (
	"context"

	"github.com/stepline/stepline/runtime/execution"
)

// Work is a single unit of work executed by a step. The session is owned by
// the current run and is only ever accessed by the step being executed, so
// implementations may read and mutate it freely.
type Work func(ctx context.Context, session *execution.Session) error

// Condition decides whether a step should run. A false result skips the step
// without counting it as a failure. Conditions may perform blocking work and
// should honour ctx.
type Condition func(ctx context.Context, session *execution.Session) (bool, error)
