package aggregation

import "errors"

var (
	// ErrInvalidShape reports a prediction tensor whose rank or axis lengths
	// violate the [teachers, groups, samples] contract.
	ErrInvalidShape = errors.New("invalid tensor shape")

	// ErrInvalidArgument reports a parameter outside its documented domain,
	// such as a non-positive noise scale or a class label beyond the label space.
	ErrInvalidArgument = errors.New("invalid argument")
)
