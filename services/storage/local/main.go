package local

import (
	"fmt"
	"io"
	"os"
	"path"

	"gavin/api/services/storage"
)

/*
	Directory-backed FileStore; blobs are plain files named by id
	under a configured root path.
*/
type FileStore struct {
	Root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("error preparing file store directory %s: %s", root, err)
	}

	return &FileStore{Root: root}, nil
}

func (fs *FileStore) Store(id string, contents io.Reader) (int64, error) {
	destination, err := os.Create(fs.pathFor(id))
	if err != nil {
		return 0, err
	}
	defer destination.Close()

	written, err := io.Copy(destination, contents)
	if err != nil {
		return 0, err
	}

	return written, nil
}

func (fs *FileStore) Open(id string) (io.ReadCloser, error) {
	f, err := os.Open(fs.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrFileNotFound
		}
		return nil, err
	}

	return f, nil
}

func (fs *FileStore) Delete(id string) error {
	err := os.Remove(fs.pathFor(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (fs *FileStore) pathFor(id string) string {
	return path.Join(fs.Root, id)
}
