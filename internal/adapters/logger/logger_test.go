package logger_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	originalStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = originalStderr }()

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	require.NoError(t, w.Close())
	output := <-done
	require.NoError(t, r.Close())
	return output
}

func TestNew(t *testing.T) {
	output := captureStderr(t, func() {
		logger.New().Info("test initialization")
	})
	assert.Contains(t, output, "test initialization")
	assert.Contains(t, output, "INFO")
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *logger.Logger)
		want  string
		level string
	}{
		{"info", func(l *logger.Logger) { l.Info("some message") }, "some message", "INFO"},
		{"warn", func(l *logger.Logger) { l.Warn("some warning") }, "some warning", "WARN"},
		{"error", func(l *logger.Logger) { l.Error(os.ErrPermission) }, "permission denied", "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(logger.NewWithWriter(&buf))
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "level="+tt.level)
		})
	}
}

func TestLogger_ErrorMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf).Error(zerr.With(zerr.New("group compilation failed"), "group", "0.8.20"))
	assert.Contains(t, buf.String(), "group compilation failed")
}

func TestLogger_SetQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf)
	l.SetQuiet(true)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	l.SetQuiet(false)
	l.Info("visible again")
	assert.Contains(t, buf.String(), "visible again")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := logger.NewWithWriter(&first)
	l.SetQuiet(true)
	l.SetOutput(&second)
	l.Info("dropped")
	l.Warn("moved")
	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
	assert.NotContains(t, second.String(), "dropped")
}
