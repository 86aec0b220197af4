package solver

import (
	"errors"
	"fmt"
)

// MaxNumbers bounds the size of an input multiset. Enumeration is
// exponential in the input size, so anything larger would never finish.
const MaxNumbers = 24

var (
	// ErrInvalidInput is returned for empty, oversized or non-positive input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled is returned by Session.Collect after Cancel.
	ErrCanceled = errors.New("session canceled")

	// ErrWorkerClosed is returned when the worker's batch channel closes
	// while a run is active.
	ErrWorkerClosed = errors.New("worker closed")
)

// Validate checks that numbers is a non-empty multiset of at most
// MaxNumbers positive integers.
func Validate(numbers []int) error {
	if len(numbers) == 0 {
		return fmt.Errorf("%w: no numbers given", ErrInvalidInput)
	}
	if len(numbers) > MaxNumbers {
		return fmt.Errorf("%w: %d numbers exceeds the limit of %d", ErrInvalidInput, len(numbers), MaxNumbers)
	}
	for i, n := range numbers {
		if n <= 0 {
			return fmt.Errorf("%w: number %d at position %d is not positive", ErrInvalidInput, n, i)
		}
	}
	return nil
}
