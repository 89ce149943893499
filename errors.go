package scrambler

import "errors"

// Sentinel errors for the scrambler package.
var (
	// Configuration errors
	ErrInvalidConfig = errors.New("scrambler: invalid config")
	ErrUnknownMode   = errors.New("scrambler: unknown mode")

	// Generation errors
	ErrUnsatisfiableConstraint = errors.New("scrambler: adjacency constraint cannot be satisfied")

	// Parsing errors
	ErrInvalidNotation    = errors.New("scrambler: invalid move notation")
	ErrAdjacencyViolation = errors.New("scrambler: adjacent move repeats")
)
