package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tick/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func readLog(t *testing.T, tickDir string) string {
	t.Helper()
	content, err := os.ReadFile(domain.LogPath(tickDir))
	require.NoError(t, err)
	return string(content)
}

func TestLogger_Info(t *testing.T) {
	tickDir := t.TempDir()
	logger := New(tickDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC) }
	defer func() { _ = logger.Close() }()

	logger.Info("toggle", "0.0.0.1 completed=true")

	assert.Equal(t, "[2025-12-30 09:32:51] [INFO] [toggle] 0.0.0.1 completed=true\n", readLog(t, tickDir))
	assert.Equal(t, domain.LogPath(tickDir), logger.Path())
}

func TestLogger_LevelFiltering(t *testing.T) {
	tickDir := t.TempDir()
	logger := New(tickDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("cat", "debug message")
	logger.Info("cat", "info message")
	logger.Warn("cat", "warn message")
	logger.Error("cat", "error message")

	content := readLog(t, tickDir)
	assert.NotContains(t, content, "debug message")
	assert.NotContains(t, content, "info message")
	assert.Contains(t, content, "[WARN] [cat] warn message")
	assert.Contains(t, content, "[ERROR] [cat] error message")
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)
	logger.Info("cat", "ignored")
	assert.Empty(t, logger.Path())
	assert.NoError(t, logger.Close())
}

func TestLogger_ReopenAfterClose(t *testing.T) {
	tickDir := t.TempDir()
	logger := New(tickDir, slog.LevelInfo)

	logger.Info("a", "first")
	require.NoError(t, logger.Close())
	logger.Info("b", "second")
	require.NoError(t, logger.Close())

	lines := strings.Split(strings.TrimSpace(readLog(t, tickDir)), "\n")
	assert.Len(t, lines, 2)
}

func TestLogger_Concurrent(t *testing.T) {
	tickDir := t.TempDir()
	logger := New(tickDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("concurrent", "message")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(readLog(t, tickDir)), "\n")
	assert.Len(t, lines, 20)
}
