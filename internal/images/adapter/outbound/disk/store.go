package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anthanhphan/icon-layout-configurator/internal/images/port"
)

// Store keeps images as plain files in a single directory.
type Store struct {
	root string
}

// Ensure Store implements port.ImageStore.
var _ port.ImageStore = (*Store)(nil)

// New prepares root (creating it if needed) and returns a store over it.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the storage directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) Create(ctx context.Context, filename string, reader io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	path := filepath.Join(s.root, filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", 0, port.ErrNameTaken
		}
		return "", 0, fmt.Errorf("failed to create %s: %w", filename, err)
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: reader})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// No partial files are left behind.
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return path, n, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *Store) Locate(ctx context.Context, filename string) (string, int64, error) {
	path := filepath.Join(s.root, filename)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", 0, port.ErrImageNotFound
		}
		return "", 0, fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	if !info.Mode().IsRegular() {
		return "", 0, port.ErrImageNotFound
	}
	return path, info.Size(), nil
}

// ctxReader stops a copy once the request context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
