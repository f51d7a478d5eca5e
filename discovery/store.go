// Package discovery maintains the topic backlog and proposes new
// topic/format pairs for production.
package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"shortform-pipeline/types"
)

// Store is the file-backed topic backlog. Reads return the full list;
// writes replace it wholesale.
type Store struct {
	path string
}

func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dataDir, "topics.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("seed topics file: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Load returns the backlog. A missing or corrupt file reads as empty so
// the pipeline can always make progress.
func (s *Store) Load() []types.Topic {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var topics []types.Topic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil
	}
	return topics
}

// Save replaces the backlog with the given list.
func (s *Store) Save(topics []types.Topic) error {
	data, err := json.MarshalIndent(topics, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write topics: %w", err)
	}
	return nil
}

// MarkStatus transitions every listed id to status. Idempotent, and ids
// that are not in the backlog are silently ignored.
func (s *Store) MarkStatus(ids []string, status string) error {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	topics := s.Load()
	changed := false
	for i := range topics {
		if want[topics[i].ID] && topics[i].Status != status {
			topics[i].Status = status
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.Save(topics)
}
