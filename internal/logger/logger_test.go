package logger

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	captureOutput(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	buf := captureOutput(t, true)

	Debug("terms %d", 3)
	Info("path %s", "fallback")
	Warn("missing %s", "file")

	assert.Equal(t, "[DEBUG] terms 3\n[INFO] path fallback\n[WARN] missing file\n", buf.String())
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := captureOutput(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := captureOutput(t, false)

	Error("mapping failed: %v", "boom")

	assert.Equal(t, "[ERROR] mapping failed: boom\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := captureOutput(t, true)

	Section("Search Execution")

	assert.Equal(t, "\n=== Search Execution ===\n", buf.String())
}

func TestSince(t *testing.T) {
	buf := captureOutput(t, true)

	Since("Search", time.Now().Add(-2*time.Millisecond))

	assert.Regexp(t, `^\[DEBUG\] Search took \d`, buf.String())
}

func TestSince_WhenNotVerbose(t *testing.T) {
	buf := captureOutput(t, false)

	Since("Search", time.Now())

	assert.Empty(t, buf.String())
}
