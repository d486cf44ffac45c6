package prosperworks_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := prosperworks.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	logger.Debug("hidden", nil)
	logger.Info("HTTP Response", map[string]interface{}{"status": 200})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"HTTP Response\"")
	assert.Contains(t, out, "status=200")
}
