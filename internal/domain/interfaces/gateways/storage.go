package gateways

import "io"

// Storage is the narrow byte-stream contract the pipeline needs from its
// storage backend: read an artifact, write a temporary file, and commit
// it with an atomic rename. Rename must be all-or-nothing with respect
// to concurrent readers of the destination path.
type Storage interface {
	// Open opens the file at path for reading
	Open(path string) (io.ReadCloser, error)

	// Create creates (or truncates) the file at path for writing
	Create(path string) (io.WriteCloser, error)

	// Rename atomically replaces newPath with the content at oldPath
	Rename(oldPath, newPath string) error

	// Remove deletes the file at path. Used for best-effort cleanup of
	// abandoned temporary files.
	Remove(path string) error
}
