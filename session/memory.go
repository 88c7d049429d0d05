package session

import (
	"sync"

	"carelink/models"
)

// MemoryStore keeps the session in process memory. Used by tests and by
// runs that should not leave a session behind.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Token() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *MemoryStore) User() (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *MemoryStore) SetUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user == nil {
		m.user = nil
		return nil
	}
	u := *user
	m.user = &u
	return nil
}

func (m *MemoryStore) ClearUser() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}
