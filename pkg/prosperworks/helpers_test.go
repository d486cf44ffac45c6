package prosperworks_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

type recordedCall struct {
	Method  string
	Path    string
	Payload map[string]any
}

type handlerFunc func(method, path string, payload map[string]any) (any, error)

// fakeSession answers engine requests from a handler and records them.
type fakeSession struct {
	mu      sync.Mutex
	calls   []recordedCall
	handler handlerFunc
	cache   *prosperworks.ReferenceCache
}

func newFakeSession(handler handlerFunc) *fakeSession {
	return &fakeSession{
		handler: handler,
		cache:   prosperworks.NewReferenceCache(prosperworks.NewMemoryCache(), 0),
	}
}

func (s *fakeSession) Do(_ context.Context, method, path string, payload map[string]any) (any, error) {
	s.mu.Lock()
	s.calls = append(s.calls, recordedCall{Method: method, Path: path, Payload: payload})
	s.mu.Unlock()

	return s.handler(method, path, payload)
}

func (s *fakeSession) ReferenceCache() *prosperworks.ReferenceCache {
	return s.cache
}

func (s *fakeSession) Calls() []recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedCall(nil), s.calls...)
}

// decode parses JSON the way the transport does.
func decode(t *testing.T, body string) any {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()

	var v any
	require.NoError(t, dec.Decode(&v))

	return v
}

func decodeObject(t *testing.T, body string) map[string]any {
	t.Helper()

	obj, ok := decode(t, body).(map[string]any)
	require.True(t, ok, "expected JSON object")

	return obj
}
