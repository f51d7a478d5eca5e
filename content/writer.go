package content

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteMarkdown persists a draft as {slug}.md under dir.
func WriteMarkdown(dir string, a Article) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create posts dir: %w", err)
	}
	path := filepath.Join(dir, a.Slug+".md")
	if err := os.WriteFile(path, []byte(a.Content+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write article: %w", err)
	}
	return path, nil
}
