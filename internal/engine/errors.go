package engine

import "errors"

// ErrInvalidInput flags a primary numeric field that is missing, out of its
// valid domain, or otherwise unusable. It aborts the whole evaluation; callers
// should surface a "cannot assess" state rather than a fabricated decision.
var ErrInvalidInput = errors.New("invalid input")

// ErrIncompleteAttribute flags a secondary field (such as the bureau score)
// that could not be read. It is absorbed inside the engine by substituting a
// neutral rationale line and never escapes Evaluate.
var ErrIncompleteAttribute = errors.New("incomplete attribute")
