package markdown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// UpsertNote creates or updates the note at path: meta keys are merged
// into the existing frontmatter and the named block is regenerated. The
// file is replaced through a temp file and rename.
func UpsertNote(path string, meta map[string]any, block, generated string) error {
	doc := Document{Meta: map[string]any{}}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if doc, err = Parse(string(raw)); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read note: %w", err)
	}

	for k, v := range meta {
		doc.Meta[k] = v
	}
	doc.Body = ReplaceBlock(doc.Body, block, generated)
	rendered, err := doc.Render()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create note dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace note: %w", err)
	}
	return nil
}
