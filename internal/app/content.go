package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/richedit/internal/editor"
)

// isJSON reports whether path stores content as a change document
// ({"text": ..., "html": ...}) rather than raw markup.
func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// loadContent reads the markup stored at path. A missing file is an
// empty document.
func loadContent(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", &FileError{Op: "open", Path: path, Err: err}
	}
	if !isJSON(path) {
		return string(data), nil
	}
	ch, err := editor.ParseChange(data)
	if err != nil {
		return "", &FileError{Op: "open", Path: path, Err: err}
	}
	return ch.HTML, nil
}

// saveContent writes the change to path in the format its extension
// selects.
func saveContent(path string, ch editor.Change) error {
	if path == "" {
		return ErrNoContentPath
	}
	data := []byte(ch.HTML)
	if isJSON(path) {
		var err error
		if data, err = ch.JSON(); err != nil {
			return &FileError{Op: "save", Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}
