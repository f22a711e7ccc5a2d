package profiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func files(t *testing.T, dir string) (cpu, traces int) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".cpu.prof"):
			cpu++
		case strings.HasSuffix(e.Name(), ".trace"):
			traces++
		}
	}
	return cpu, traces
}

func TestNewCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "profiles")
	p, err := New(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, p.Dir())
	assert.DirExists(t, dir)
}

func TestCaptureSync(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, p.CaptureSync("test", 20*time.Millisecond))
	assert.False(t, p.IsProfiling())

	cpu, traces := files(t, dir)
	assert.Equal(t, 1, cpu)
	assert.Equal(t, 1, traces)
}

func TestCaptureCooldown(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir, zap.NewNop(),
		WithCaptureDuration(20*time.Millisecond),
		WithCooldown(time.Hour),
	)
	require.NoError(t, err)

	require.NoError(t, p.Capture("first"))
	err = p.Capture("second")
	assert.ErrorIs(t, err, ErrBusy)

	p.Wait()
	assert.False(t, p.IsProfiling())

	err = p.Capture("third")
	assert.ErrorIs(t, err, ErrCooldown)

	cpu, _ := files(t, dir)
	assert.Equal(t, 1, cpu)
}
