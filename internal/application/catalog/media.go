package catalog

import (
	"context"
	"strings"

	"github.com/marketplace/backend/internal/domain/catalog"
)

type mediaBaseKey struct{}

// WithMediaBase stores the absolute media base URL of the current request
func WithMediaBase(ctx context.Context, base string) context.Context {
	return context.WithValue(ctx, mediaBaseKey{}, base)
}

// MediaBase returns the request's media base, falling back to the
// configured one
func MediaBase(ctx context.Context, fallback string) string {
	if base, ok := ctx.Value(mediaBaseKey{}).(string); ok && base != "" {
		return base
	}
	return fallback
}

// AbsoluteMediaBase makes a relative media URL absolute for the given
// scheme and host; absolute URLs are returned as is.
func AbsoluteMediaBase(mediaURL, scheme, host string) string {
	if strings.HasPrefix(mediaURL, "http://") || strings.HasPrefix(mediaURL, "https://") || host == "" {
		return mediaURL
	}
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + host + "/" + strings.TrimLeft(mediaURL, "/")
}

// MediaURLs builds image URLs for the current request
type MediaURLs struct {
	base string
}

// NewMediaURLs creates a URL builder over the configured media base
func NewMediaURLs(base string) MediaURLs {
	return MediaURLs{base: base}
}

// For returns the URL of a stored image path
func (m MediaURLs) For(ctx context.Context, path string) string {
	return catalog.ImageURL(MediaBase(ctx, m.base), path)
}
