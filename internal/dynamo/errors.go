package dynamo

import "errors"

// Domain errors for render operations.
var (
	// ErrInvalidSize indicates a quadrant or canvas with a non-positive size.
	ErrInvalidSize = errors.New("dynamo: size must be positive")

	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("dynamo: worker count must be positive")

	// ErrInvalidSamples indicates a non-positive sample count.
	ErrInvalidSamples = errors.New("dynamo: sample count must be positive")

	// ErrShapeMismatch indicates grids of different sizes were combined.
	ErrShapeMismatch = errors.New("dynamo: grid shape mismatch")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)
