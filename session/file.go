package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"carelink/models"
)

// fileState is the on-disk shape: one JSON document holding both keys, the
// local-storage analog of the browser client.
type fileState struct {
	AuthToken   string       `json:"authToken,omitempty"`
	CurrentUser *models.User `json:"currentUser,omitempty"`
}

// FileStore persists the session as a JSON file. Writes go through a temp
// file and rename so a crash never leaves a half-written session.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) load() (fileState, error) {
	var st fileState
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("failed to parse session file: %w", err)
	}
	return st, nil
}

func (f *FileStore) save(st fileState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (f *FileStore) Token() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return "", err
	}
	return st.AuthToken, nil
}

func (f *FileStore) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return err
	}
	st.AuthToken = token
	return f.save(st)
}

func (f *FileStore) ClearToken() error {
	return f.SetToken("")
}

func (f *FileStore) User() (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return nil, err
	}
	return st.CurrentUser, nil
}

func (f *FileStore) SetUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return err
	}
	st.CurrentUser = user
	return f.save(st)
}

func (f *FileStore) ClearUser() error {
	return f.SetUser(nil)
}
