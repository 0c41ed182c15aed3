package journal

import "errors"

var (
	// ErrNotFound is returned when an entry does not exist or does not belong
	// to the requesting user. Both cases fail identically so ownership checks
	// never leak the existence of other users' entries.
	ErrNotFound = errors.New("journal entry not found")

	// ErrForbidden is returned when an operation is structurally disallowed,
	// such as sharing a private entry.
	ErrForbidden = errors.New("cannot share private entries")
)
