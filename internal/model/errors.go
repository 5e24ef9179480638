package model

import "errors"

var (
	// ErrInvalidArgument marks inputs rejected before any arithmetic runs.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrArithmeticDegenerate marks a run whose inputs validated but whose arithmetic
	// hit a zero denominator or produced a non-finite value.
	ErrArithmeticDegenerate = errors.New("arithmetic degenerate")
)
