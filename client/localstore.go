package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"taskpalette/services/task"
)

// storeKey is the fixed name the collection is persisted under.
const storeKey = "tasks"

// LocalStore is the durable fallback mirror of the task collection: one JSON
// document on disk. On first load with no existing data it installs the
// sample set, like a fresh client would.
type LocalStore struct {
	path string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{path: filepath.Join(dir, storeKey+".json")}
}

// Load reads the persisted collection. Missing or unreadable data counts as
// empty and triggers the seed install.
func (s *LocalStore) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var tasks []task.Task
	if err == nil {
		if jsonErr := json.Unmarshal(data, &tasks); jsonErr != nil {
			tasks = nil
		}
	}

	if len(tasks) == 0 {
		for _, t := range task.SampleTasks() {
			tasks = append(tasks, *t)
		}
		if err := s.Save(tasks); err != nil {
			return nil, err
		}
	}

	return tasks, nil
}

// Save atomically replaces the persisted collection.
func (s *LocalStore) Save(tasks []task.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
