package raftstorage

import "github.com/pkg/errors"

var (
	// ErrCompacted is returned when the requested index is at or before the
	// compaction boundary. The entry is gone, the caller has to fall back to
	// a snapshot.
	ErrCompacted = errors.New("raftstorage: requested index is unavailable due to compaction")

	// ErrUnavailable is returned when the requested index has not been
	// appended yet.
	ErrUnavailable = errors.New("raftstorage: requested entry at index is unavailable")

	// ErrSnapOutOfDate is returned by ApplySnapshot when the snapshot is not
	// newer than the current boundary.
	ErrSnapOutOfDate = errors.New("raftstorage: requested index is older than the existing snapshot")

	// ErrInvalidEntries is returned when seed entries do not follow the boundary.
	ErrInvalidEntries = errors.New("raftstorage: entries are not contiguous")
)
