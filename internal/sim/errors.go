package sim

import "errors"

// ErrInvalidConfig indicates a game was configured with a bad seed or
// missing team identifiers. It is rejected before any simulation runs.
var ErrInvalidConfig = errors.New("invalid game configuration")

// ErrInconsistentState indicates an internal-consistency violation
// (impossible outs, runs, or base occupancy). It is always fatal for the
// game; no partial result is produced.
var ErrInconsistentState = errors.New("internal consistency violation")

// ErrSafetyCap indicates the pitch or inning safety cap was exceeded.
// The cap exists to fail fast on a logic defect, never as control flow.
var ErrSafetyCap = errors.New("safety cap exceeded")
