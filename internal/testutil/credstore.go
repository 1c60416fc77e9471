package testutil

import "sync"

// MemStore is an in-memory session.CredentialStore that counts its writes,
// so tests can assert that persisted credentials are cleared exactly once.
type MemStore struct {
	mu         sync.Mutex
	credential string
	username   string

	SaveCalls  int
	ClearCalls int

	LoadErr  error
	SaveErr  error
	ClearErr error
}

// Seed sets the persisted session without counting as a Save call.
func (m *MemStore) Seed(credential, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = credential
	m.username = username
}

func (m *MemStore) Load() (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", "", m.LoadErr
	}
	return m.credential, m.username, nil
}

func (m *MemStore) Save(credential, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.credential = credential
	m.username = username
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.credential = ""
	m.username = ""
	return nil
}

// Credential returns the currently persisted credential.
func (m *MemStore) Credential() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

// Username returns the currently persisted username.
func (m *MemStore) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}
