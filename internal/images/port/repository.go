package port

import (
	"context"
	"errors"
	"io"
)

// ErrNameTaken is returned by ImageStore.Create when the name already exists.
var ErrNameTaken = errors.New("filename already exists")

//go:generate mockgen -destination=../service/mocks/store_mock.go -package=mocks -source=repository.go

// ImageStore is the flat directory that holds uploaded images.
type ImageStore interface {
	// Create writes reader into a new file. It never overwrites: an existing
	// name yields ErrNameTaken and leaves the reader unread.
	Create(ctx context.Context, filename string, reader io.Reader) (path string, size int64, err error)

	// List returns the names of regular files in the directory.
	List(ctx context.Context) ([]string, error)

	// Locate returns the path and size of a stored file, or ErrImageNotFound.
	Locate(ctx context.Context, filename string) (path string, size int64, err error)
}
