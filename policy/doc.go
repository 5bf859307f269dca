// Package policy defines the retry backoff policy applied between failed
// step attempts. It is deliberately decoupled from the engine so that using
// it is entirely opt-in: runs whose context carries no policy fall back to
// the engine's configured default.
package policy
