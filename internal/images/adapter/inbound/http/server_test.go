package http_handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthanhphan/icon-layout-configurator/internal/images/adapter/outbound/disk"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/config"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/domain"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/port"
	"github.com/anthanhphan/icon-layout-configurator/internal/images/service"
	"github.com/anthanhphan/icon-layout-configurator/internal/layout"
	"github.com/anthanhphan/icon-layout-configurator/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "Images")
	store, err := disk.New(root)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Storage.Dir = root
	svc := service.NewImageService(store, idgen.NewStamper(nil), cfg.Server.PublicBaseURL)

	return NewServer(cfg, svc), root
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField(field, string(content)))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doRequest(t *testing.T, s *Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func upload(t *testing.T, s *Server, filename string, content []byte) string {
	t.Helper()

	resp, body := doRequest(t, s, multipartRequest(t, uploadField, filename, content))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out uploadResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Filename
}

func listImages(t *testing.T, s *Server) []string {
	t.Helper()

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/images", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var names []string
	require.NoError(t, json.Unmarshal(body, &names))
	return names
}

func TestUploadListServeRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)

	content := make([]byte, 10*1024)
	_, err := rand.Read(content)
	require.NoError(t, err)

	filename := upload(t, s, "cat.jpg", content)
	assert.Regexp(t, `^\d+_cat\.jpg$`, filename)

	assert.Contains(t, listImages(t, s), filename)

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/images/"+filename, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, content, body)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
}

func TestUpload_SameNameTwiceYieldsDistinctFilenames(t *testing.T) {
	s, _ := newTestServer(t)

	first := upload(t, s, "cat.jpg", []byte("one"))
	second := upload(t, s, "cat.jpg", []byte("two"))

	assert.NotEqual(t, first, second)
	assert.ElementsMatch(t, []string{first, second}, listImages(t, s))
}

func TestUpload_MissingFileField(t *testing.T) {
	s, root := newTestServer(t)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "other file field", req: multipartRequest(t, "avatar", "cat.jpg", []byte("x"))},
		{name: "plain value instead of file", req: multipartRequest(t, uploadField, "", []byte("x"))},
		{name: "not multipart", req: httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader([]byte("x")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, s, tt.req)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "No file uploaded.", string(body))
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
		})
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestList_CountsEveryUpload(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, []string{}, listImages(t, s))

	const n = 5
	returned := make([]string, 0, n)
	for i := 0; i < n; i++ {
		returned = append(returned, upload(t, s, "icon.png", []byte{byte(i)}))
	}

	assert.ElementsMatch(t, returned, listImages(t, s))
}

func TestList_DirectoryReadFailure(t *testing.T) {
	s, root := newTestServer(t)
	require.NoError(t, os.RemoveAll(root))

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/images", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error reading directory", string(body))
}

func TestServe_URLSyntaxInFilename(t *testing.T) {
	s, _ := newTestServer(t)

	for _, name := range []string{"my cat.jpg", "50%off.png", "a?b.png", "x#y.png", "a%41b.png"} {
		t.Run(name, func(t *testing.T) {
			content := []byte("bytes of " + name)
			filename := upload(t, s, name, content)
			assert.Contains(t, listImages(t, s), filename)

			resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/images/"+url.PathEscape(filename), nil))
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Equal(t, content, body)
		})
	}
}

// staleImageService resolves every name to a path that no longer exists,
// as when a file is removed between lookup and send.
type staleImageService struct {
	root string
}

func (f *staleImageService) Upload(ctx context.Context, originalName string, reader io.Reader) (*domain.StoredImage, error) {
	return nil, port.ErrNoFile
}

func (f *staleImageService) List(ctx context.Context) ([]string, error) {
	return []string{}, nil
}

func (f *staleImageService) Serve(ctx context.Context, filename string) (*domain.StoredImage, error) {
	return &domain.StoredImage{Filename: filename, Path: filepath.Join(f.root, filename), Size: 3}, nil
}

func TestServe_FileRemovedAfterLookup(t *testing.T) {
	s := NewServer(config.DefaultConfig(), &staleImageService{root: t.TempDir()})

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/images/gone.png", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", string(body))
}

func TestServe_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/images/missing.png", "/images/..%2F..%2Fetc%2Fpasswd"} {
		resp, _ := doRequest(t, s, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/images", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, _ := doRequest(t, s, req)

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestIconsAndHealth(t *testing.T) {
	s, _ := newTestServer(t)

	resp, body := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/icons", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var icons []layout.IconDefinition
	require.NoError(t, json.Unmarshal(body, &icons))
	assert.Equal(t, layout.Icons(), icons)

	resp, body = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
