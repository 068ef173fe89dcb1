package domain

import "errors"

var (
	// ErrInvalidArgument marks a request rejected before any collaborator
	// I/O, e.g. a missing or non-positive mana cap.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCardNotFound marks a battle referencing a card id absent from the
	// fetched catalog. Silently dropping such a battle would corrupt the
	// win/battle counters, so it is always propagated.
	ErrCardNotFound = errors.New("card not found in catalog")
)
