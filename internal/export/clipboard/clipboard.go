// Package clipboard copies export text to the system clipboard, falling back
// to a plain file the user can open when no clipboard is reachable.
package clipboard

import (
	"fmt"
	"os"
	"path/filepath"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"

	"github.com/atotto/clipboard"
)

// Writer puts text somewhere the user can paste it from.
type Writer interface {
	WriteText(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// File writes the text to a file, replacing earlier content.
type File struct {
	Path string
}

func (f File) WriteText(text string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(text), 0o644)
}

const (
	MethodClipboard = "clipboard"
	MethodFile      = "file"
)

// Result says where the text ended up.
type Result struct {
	Method string
	Path   string
}

// Copier tries the primary writer first and the fallback file second.
type Copier struct {
	primary  Writer
	fallback File
	log      logger.Logger
}

func NewCopier(primary Writer, fallbackPath string, log logger.Logger) *Copier {
	return &Copier{primary: primary, fallback: File{Path: fallbackPath}, log: log}
}

// Copy never touches proposal state. It fails only when both targets fail.
func (c *Copier) Copy(text string) (Result, error) {
	err := c.primary.WriteText(text)
	if err == nil {
		return Result{Method: MethodClipboard}, nil
	}
	c.log.Warn("Clipboard unavailable, writing fallback file", map[string]interface{}{
		"error": err.Error(),
		"path":  c.fallback.Path,
	})

	if c.fallback.Path == "" {
		return Result{}, errors.NewClipboardFailedError(err)
	}
	if ferr := c.fallback.WriteText(text); ferr != nil {
		return Result{}, errors.NewClipboardFailedError(fmt.Errorf("%v; fallback %s: %w", err, c.fallback.Path, ferr))
	}
	return Result{Method: MethodFile, Path: c.fallback.Path}, nil
}
