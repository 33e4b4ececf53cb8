package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/domain"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/port"
)

//go:generate mockgen -destination=mocks/dependencies_mock.go -package=mocks -source=image_service.go

// Stamper hands out strictly increasing millisecond timestamps.
type Stamper interface {
	Next() int64
}

// maxNameAttempts bounds how many stamps an upload tries when a name is
// already taken by another writer of the same directory.
const maxNameAttempts = 5

// ImageServiceImpl implements port.ImageService over an ImageStore.
type ImageServiceImpl struct {
	store   port.ImageStore
	stamper Stamper
	baseURL string
}

// Ensure ImageServiceImpl implements port.ImageService.
var _ port.ImageService = (*ImageServiceImpl)(nil)

// NewImageService builds the service. baseURL is the public address that
// prefixes the URL of every stored image.
func NewImageService(store port.ImageStore, stamper Stamper, baseURL string) *ImageServiceImpl {
	return &ImageServiceImpl{
		store:   store,
		stamper: stamper,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores reader under "<stamp>_<base name of originalName>".
func (s *ImageServiceImpl) Upload(ctx context.Context, originalName string, reader io.Reader) (*domain.StoredImage, error) {
	if reader == nil {
		return nil, port.ErrNoFile
	}

	name, err := cleanOriginalName(originalName)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		filename := domain.StoredName(s.stamper.Next(), name)

		filePath, size, err := s.store.Create(ctx, filename, reader)
		if errors.Is(err, port.ErrNameTaken) {
			logger.Warnw("Upload name taken, trying next stamp", "filename", filename, "attempt", attempt+1)
			continue
		}
		if err != nil {
			logger.Errorw("Upload failed", "filename", filename, "error", err.Error())
			return nil, fmt.Errorf("failed to store %s: %w", filename, err)
		}

		logger.Infow("Upload completed", "filename", filename, "size_bytes", size)
		return &domain.StoredImage{
			Filename: filename,
			Path:     filePath,
			URL:      domain.ImageURL(s.baseURL, filename),
			Size:     size,
		}, nil
	}

	return nil, fmt.Errorf("no free name for %s after %d attempts: %w", name, maxNameAttempts, port.ErrNameTaken)
}

// List returns the names currently on disk, with no caching.
func (s *ImageServiceImpl) List(ctx context.Context) ([]string, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		logger.Errorw("Listing images failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %w", port.ErrStorageRead, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Serve resolves filename to a stored image. Names that could escape the
// storage directory are reported as not found.
func (s *ImageServiceImpl) Serve(ctx context.Context, filename string) (*domain.StoredImage, error) {
	if !isPlainName(filename) {
		return nil, port.ErrImageNotFound
	}

	filePath, size, err := s.store.Locate(ctx, filename)
	if err != nil {
		return nil, err
	}

	return &domain.StoredImage{
		Filename: filename,
		Path:     filePath,
		URL:      domain.ImageURL(s.baseURL, filename),
		Size:     size,
	}, nil
}

// cleanOriginalName drops any directory part a client sent along with the
// name. Only the stamped name has to be a plain file name, so a bare ".."
// is kept and stored as "<stamp>_..".
func cleanOriginalName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "" || !isPlainName(domain.StoredName(0, base)) {
		return "", fmt.Errorf("%w: %q", port.ErrInvalidFilename, name)
	}
	return base, nil
}

func isPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
