package port

import (
	"context"
	"errors"
	"io"

	"github.com/anthanhphan/icon-layout-configurator/internal/images/domain"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrStorageRead     = errors.New("error reading directory")
	ErrImageNotFound   = errors.New("image not found")
)

// ImageService defines the upload, listing and retrieval operations.
type ImageService interface {
	// Upload stores the content of reader under a new unique name derived from originalName.
	Upload(ctx context.Context, originalName string, reader io.Reader) (*domain.StoredImage, error)

	// List returns the names of all files currently in storage.
	List(ctx context.Context) ([]string, error)

	// Serve resolves a stored image by name for static delivery.
	Serve(ctx context.Context, filename string) (*domain.StoredImage, error)
}
