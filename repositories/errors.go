package repositories

import "errors"

// Store sentinels. Implementations wrap them so callers can match with errors.Is.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")

	// ErrReferenced means a foreign key blocked the write or delete.
	ErrReferenced = errors.New("record is referenced")
)
