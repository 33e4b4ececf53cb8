package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/domain"
	"github.com/anthanhphan/icon-layout-configurator/pkg/resilience"
	"github.com/gofiber/fiber/v2"
)

// DefaultServerURL is where the image service listens by default.
const DefaultServerURL = "http://localhost:3001"

const (
	uploadField           = "image"
	defaultRequestTimeout = 30 * time.Second
	defaultParallel       = 4
)

var (
	ErrUploadFailed = errors.New("failed to upload image")
	ErrListFailed   = errors.New("failed to list images")
)

// ImageFile is a named blob to upload.
type ImageFile struct {
	Name    string
	Content []byte
}

// UploadResult reports one upload of SaveImages.
type UploadResult struct {
	Name     string
	Filename string
	Err      error
}

// Bridge connects the layout client to the image service.
type Bridge struct {
	baseURL  string
	timeout  time.Duration
	parallel int
}

type Option func(*Bridge)

// WithTimeout caps each request.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithParallelUploads sets how many uploads SaveImages runs at once.
func WithParallelUploads(n int) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.parallel = n
		}
	}
}

// NewBridge returns a bridge to the service at baseURL, or DefaultServerURL when empty.
func NewBridge(baseURL string, opts ...Option) *Bridge {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	b := &Bridge{
		baseURL:  strings.TrimRight(baseURL, "/"),
		timeout:  defaultRequestTimeout,
		parallel: defaultParallel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) BaseURL() string {
	return b.baseURL
}

// SaveImage uploads content as a single multipart file and returns the
// filename the service stored it under.
func (b *Bridge) SaveImage(ctx context.Context, name string, content []byte) (string, error) {
	timeout, err := b.requestTimeout(ctx)
	if err != nil {
		return "", err
	}

	agent := fiber.Post(b.baseURL + "/upload")
	agent.Timeout(timeout)
	agent.FileData(&fiber.FormFile{
		Fieldname: uploadField,
		Name:      name,
		Content:   content,
	})
	agent.MultipartForm(nil)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	var resp struct {
		Filename string `json:"filename"`
	}
	code, body, errs := agent.Struct(&resp)
	if code != fiber.StatusOK {
		if code == 0 && len(errs) > 0 {
			return "", fmt.Errorf("%w: %w", ErrUploadFailed, errors.Join(errs...))
		}
		logger.Warnw("Image upload rejected", "name", name, "status", code, "body", string(body))
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, code)
	}
	if len(errs) > 0 || resp.Filename == "" {
		return "", fmt.Errorf("%w: malformed response %q", ErrUploadFailed, body)
	}
	return resp.Filename, nil
}

// LoadImage returns the URL an image element can load name from. It does
// not contact the service.
func (b *Bridge) LoadImage(name string) string {
	return domain.ImageURL(b.baseURL, name)
}

// ListImages returns the filenames the service currently stores.
func (b *Bridge) ListImages(ctx context.Context) ([]string, error) {
	timeout, err := b.requestTimeout(ctx)
	if err != nil {
		return nil, err
	}

	agent := fiber.Get(b.baseURL + domain.ImagesPath)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, fmt.Errorf("%w: %w", ErrListFailed, err)
	}

	var names []string
	code, body, errs := agent.Struct(&names)
	if code != fiber.StatusOK {
		if code == 0 && len(errs) > 0 {
			return nil, fmt.Errorf("%w: %w", ErrListFailed, errors.Join(errs...))
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrListFailed, code, strings.TrimSpace(string(body)))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: malformed response %q", ErrListFailed, body)
	}
	return names, nil
}

// SaveImages uploads files in parallel. Results line up with files; a
// failed upload does not stop the others and nothing is retried.
func (b *Bridge) SaveImages(ctx context.Context, files []ImageFile) []UploadResult {
	results := make([]UploadResult, len(files))
	pool := resilience.NewWorkerPool(b.parallel, len(files))

	for i, f := range files {
		results[i].Name = f.Name
		err := pool.Submit(ctx, func() {
			results[i].Filename, results[i].Err = b.SaveImage(ctx, f.Name, f.Content)
		})
		if err != nil {
			results[i].Err = err
		}
	}

	pool.Stop()
	return results
}

// requestTimeout is the bridge timeout, shortened to the context deadline.
func (b *Bridge) requestTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, context.DeadlineExceeded
	}
	return timeout, nil
}
