// Package stepline provides an embeddable sequential workflow engine.
//
// A workflow is an ordered, immutable sequence of named steps sharing one
// mutable key/value session. The engine runs each step to completion,
// enforcing per-step timeouts, retry policies and skip conditions, while
// emitting a deterministic stream of lifecycle events.
//
// End-users typically interact via the Service façade exposed by this
// package:
//
//	srv := stepline.New()
//	srv.On(event.StepSuccess, func(e *event.Event) { ... })
//	wf := model.NewWorkflow("provision")
//	wf.NewStep("prepare", prepare).WithRetryLimit(2)
//	wf.NewStep("apply", apply).WithTimeout(30 * time.Second)
//	err := srv.Run(ctx, wf, nil)
//
// Workflows can also be defined declaratively in YAML and loaded with
// Service.LoadWorkflow, binding step bodies from the action registry.
package stepline
