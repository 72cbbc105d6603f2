package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/photoreducer/internal/config"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordingLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recordingLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordingLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordingLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func (r *recordingLogger) has(prefix string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CheckWritable(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file left behind")
}

func TestCheckWritable_MissingFolder(t *testing.T) {
	err := CheckWritable(filepath.Join(t.TempDir(), "gone"))
	assert.True(t, errors.Is(err, ErrRootNotWritable), "got %v", err)
}

func TestRoundTrip(t *testing.T) {
	assert.NoError(t, RoundTrip(50))
}

func TestRunCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RootDir = t.TempDir()
	log := &recordingLogger{}

	assert.True(t, RunCheck(&cfg, log))
	assert.True(t, log.has("SUCCESS Folder is writable"))
	assert.True(t, log.has("SUCCESS Round trip works"))
	assert.False(t, log.has("ERROR"))
}
