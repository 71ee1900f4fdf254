package pcm

import "errors"

// Failure classes reported by buffer operations and effect stages.
// Callers match them with errors.Is; stages wrap them with context.
var (
	// ErrInvalidArgument marks a missing buffer or parameter set, or an
	// empty buffer handed to a stage.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation marks a sample or scratch allocation that could not
	// be satisfied.
	ErrAllocation = errors.New("allocation failure")

	// ErrEffect marks a stage whose own precondition does not hold for
	// the given buffer, e.g. an echo delay longer than the clip.
	ErrEffect = errors.New("effect failure")
)
