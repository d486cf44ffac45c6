package client

import (
	"context"

	"github.com/fivetwenty-io/prosperworks/internal/http"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// Session implements prosperworks.Session over the HTTP transport and the
// reference cache.
type Session struct {
	httpClient *http.Client
	cache      *prosperworks.ReferenceCache
}

// NewSession creates a session.
func NewSession(httpClient *http.Client, cache *prosperworks.ReferenceCache) *Session {
	return &Session{
		httpClient: httpClient,
		cache:      cache,
	}
}

// Do implements prosperworks.Session.Do.
func (s *Session) Do(ctx context.Context, method, path string, payload map[string]any) (any, error) {
	return s.httpClient.Request(ctx, method, path, payload)
}

// ReferenceCache implements prosperworks.Session.ReferenceCache.
func (s *Session) ReferenceCache() *prosperworks.ReferenceCache {
	return s.cache
}
