// Package model defines the workflow and step descriptors together with
// their structural validation. Descriptors are built once, via the fluent
// With* helpers or the declarative loader, and are read-only for the
// remainder of their lifetime; a workflow may be run any number of times.
package model
