package storage

import (
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("stored file not found")

/*
	Blob store boundary. Run entities keep FileMeta references;
	the bytes live behind one of these, keyed by the FileMeta id.
	Adapters: local directory, DRS over HTTP, MinIO object store.
*/
type FileStore interface {
	// Store writes the blob under the given id and returns its byte size.
	Store(id string, contents io.Reader) (int64, error)

	// Open streams a stored blob; fails with ErrFileNotFound for
	// unknown ids. The caller closes the returned reader.
	Open(id string) (io.ReadCloser, error)

	// Delete removes a stored blob. Deleting an unknown id is not an error.
	Delete(id string) error
}
