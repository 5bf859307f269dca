// Package printer provides an action that prints the session's "message"
// value to standard output.
package printer

import (
	"context"
	"fmt"

	"github.com/stepline/stepline/model/types"
	"github.com/stepline/stepline/runtime/execution"
)

// Name is the registry name of the action.
const Name = "printer"

// MessageKey is the session key holding the message to print.
const MessageKey = "message"

// New returns the printer work function.
func New() types.Work {
	return func(ctx context.Context, session *execution.Session) error {
		message, ok := session.Get(MessageKey)
		if !ok {
			return nil
		}
		fmt.Println(message)
		return nil
	}
}
