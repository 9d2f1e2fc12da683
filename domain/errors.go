package domain

import "errors"

// ErrGenerationFailed is the single caller-visible failure of a generation
// run. The underlying cause is logged, not surfaced: the caller's only
// recourse is to retry the whole operation.
var ErrGenerationFailed = errors.New("story generation failed")
