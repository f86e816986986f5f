package dynamo

import "errors"

// Domain errors for sampling operations.
var (
	// ErrInvalidConfig indicates a non-positive temperature, step count or unit.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrNilLattice indicates a run was started without a lattice.
	ErrNilLattice = errors.New("dynamo: lattice is nil")
)
