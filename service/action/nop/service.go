// Package nop provides an action that performs no operation and returns
// immediately. Useful as a placeholder in declaratively defined workflows.
package nop

import (
	"context"

	"github.com/stepline/stepline/model/types"
	"github.com/stepline/stepline/runtime/execution"
)

// Name is the registry name of the action.
const Name = "nop"

// New returns the nop work function.
func New() types.Work {
	return func(ctx context.Context, session *execution.Session) error {
		return nil
	}
}
