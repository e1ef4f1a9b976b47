package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.S3Config{AccessKeyID: "key", SecretAccessKey: "secret"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half of the key pair returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.S3Config{Bucket: "images", AccessKeyID: "key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, &config.S3Config{
			Bucket:          "images",
			Region:          "eu-west-1",
			Endpoint:        "localhost:9000",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			UsePathStyle:    true,
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "images", s.Bucket())
	})
}

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// fakeS3 answers path-style requests and records them
type fakeS3 struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   map[string]int // "METHOD /path" -> status, default 200
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	status, ok := f.status[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if !ok {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func (f *fakeS3) find(method, path string) *recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.requests {
		if f.requests[i].Method == method && f.requests[i].Path == path {
			return &f.requests[i]
		}
	}
	return nil
}

func newFakeS3Storage(t *testing.T, status map[string]int) (*S3ObjectStorage, *fakeS3) {
	t.Helper()
	fake := &fakeS3{status: status}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewS3ObjectStorage(context.Background(), &config.S3Config{
		Bucket:          "images",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	return s, fake
}

func TestS3ObjectStorage_Upload(t *testing.T) {
	s, fake := newFakeS3Storage(t, nil)

	err := s.Upload(context.Background(), "products/a.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	req := fake.find(http.MethodPut, "/images/products/a.jpg")
	require.NotNil(t, req)
	assert.Equal(t, "image/jpeg", req.ContentType)
	assert.Contains(t, string(req.Body), "jpeg-bytes")
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s, _ := newFakeS3Storage(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, s.Upload(ctx, "", []byte("x"), "image/png"), ErrKeyRequired)
	assert.ErrorIs(t, s.DeleteObject(ctx, ""), ErrKeyRequired)
	_, err := s.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, ErrKeyRequired)
}

func TestS3ObjectStorage_DeleteObject(t *testing.T) {
	s, fake := newFakeS3Storage(t, map[string]int{
		"DELETE /images/products/a.jpg": http.StatusNoContent,
	})

	require.NoError(t, s.DeleteObject(context.Background(), "products/a.jpg"))
	assert.NotNil(t, fake.find(http.MethodDelete, "/images/products/a.jpg"))
}

func TestS3ObjectStorage_ObjectExists(t *testing.T) {
	s, _ := newFakeS3Storage(t, map[string]int{
		"HEAD /images/products/missing.jpg": http.StatusNotFound,
	})
	ctx := context.Background()

	exists, err := s.ObjectExists(ctx, "products/a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ObjectExists(ctx, "products/missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3ObjectStorage_EnsureBucket(t *testing.T) {
	t.Run("existing bucket is left alone", func(t *testing.T) {
		s, fake := newFakeS3Storage(t, nil)

		require.NoError(t, s.EnsureBucket(context.Background()))
		assert.Nil(t, fake.find(http.MethodPut, "/images"))
	})

	t.Run("missing bucket is created", func(t *testing.T) {
		s, fake := newFakeS3Storage(t, map[string]int{
			"HEAD /images": http.StatusNotFound,
		})

		require.NoError(t, s.EnsureBucket(context.Background()))
		assert.NotNil(t, fake.find(http.MethodPut, "/images"))
	})
}
