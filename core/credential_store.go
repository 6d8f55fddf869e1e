package core

import (
	"strings"
	"sync"
)

// MemoryCredentialStore keeps credentials for the lifetime of the process.
type MemoryCredentialStore struct {
	mu      sync.RWMutex
	token   string
	account string
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (s *MemoryCredentialStore) Credential() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetCredential stores token as given; a blank token clears the credential.
func (s *MemoryCredentialStore) SetCredential(token string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = keepUnlessBlank(token)
	return nil
}

func (s *MemoryCredentialStore) ClearCredential() error {
	return s.SetCredential("")
}

func (s *MemoryCredentialStore) SelectedAccount() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.account != ""
}

func (s *MemoryCredentialStore) SetSelectedAccount(id string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = keepUnlessBlank(id)
	return nil
}

func keepUnlessBlank(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}

// IsAuthenticated reports whether store currently holds a credential.
func IsAuthenticated(store CredentialStore) bool {
	if store == nil {
		return false
	}
	_, ok := store.Credential()
	return ok
}

// ResolveAccount returns explicit when set, otherwise the selected account.
func ResolveAccount(store CredentialStore, explicit string) (string, error) {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed, nil
	}
	if store != nil {
		if id, ok := store.SelectedAccount(); ok {
			return id, nil
		}
	}
	return "", MissingAccountError()
}
