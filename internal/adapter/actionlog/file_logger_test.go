package actionlog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileLogger_AppendsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	logger := NewFileLogger(path, zap.NewNop())
	logger.now = func() time.Time {
		return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	}
	ctx := context.Background()

	logger.Log(ctx, "staff1", "created announcement Ab12Cd34Ef56")
	logger.Log(ctx, "boss", "updated the banner")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-05-10T12:00:00Z - staff1 created announcement Ab12Cd34Ef56", lines[0])
	assert.Equal(t, "2024-05-10T12:00:00Z - boss updated the banner", lines[1])
}

func TestFileLogger_UnwritablePathDoesNotPanic(t *testing.T) {
	logger := NewFileLogger(filepath.Join(t.TempDir(), "missing", "log.txt"), zap.NewNop())
	assert.NotPanics(t, func() {
		logger.Log(context.Background(), "staff1", "anything")
	})
}
