package domain

import "errors"

var (
	// ErrNotFound: no project matches the slug on the owner-visible path.
	ErrNotFound = errors.New("project not found")
	// ErrPermissionDenied: caller is not the owner, or is not verified.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflictingPaths: two generated files resolve to the same archive
	// path. A data/programmer error, never silently overwritten.
	ErrConflictingPaths = errors.New("conflicting output paths")
	// ErrArchiveIO: failure while writing or encoding the archive stream.
	ErrArchiveIO = errors.New("archive write failed")
)
