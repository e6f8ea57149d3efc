package clipboard

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWriter struct {
	err  error
	text string
}

func (s *stubWriter) WriteText(text string) error {
	if s.err != nil {
		return s.err
	}
	s.text = text
	return nil
}

func TestCopy_Primary(t *testing.T) {
	w := &stubWriter{}
	path := filepath.Join(t.TempDir(), "clip.txt")
	c := NewCopier(w, path, logger.NewTestLogger(t))

	res, err := c.Copy("hello")
	require.NoError(t, err)
	assert.Equal(t, MethodClipboard, res.Method)
	assert.Equal(t, "hello", w.text)
	assert.NoFileExists(t, path)
}

func TestCopy_Fallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clip.txt")
	c := NewCopier(&stubWriter{err: fmt.Errorf("no xclip")}, path, logger.NewTestLogger(t))

	res, err := c.Copy("summary text")
	require.NoError(t, err)
	assert.Equal(t, MethodFile, res.Method)
	assert.Equal(t, path, res.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "summary text", string(data))
}

func TestCopy_BothFail(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	c := NewCopier(&stubWriter{err: fmt.Errorf("no xclip")}, filepath.Join(blocker, "clip.txt"), logger.NewTestLogger(t))

	_, err := c.Copy("x")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeClipboardFailed))
}

func TestCopy_NoFallbackConfigured(t *testing.T) {
	c := NewCopier(&stubWriter{err: fmt.Errorf("no xclip")}, "", logger.NewTestLogger(t))

	_, err := c.Copy("x")
	assert.True(t, errors.HasCode(err, errors.ErrCodeClipboardFailed))
}
