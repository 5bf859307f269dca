// Package engine orchestrates workflow runs: it iterates steps strictly in
// declaration order, applies condition, timeout and retry policy, emits
// lifecycle events and classifies errors. A single run occupies one logical
// thread of control; steps never execute concurrently with each other.
package engine
