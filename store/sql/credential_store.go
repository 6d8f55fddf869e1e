package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-vaultra/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ClientStateStore keeps the bearer credential and the selected account in
// the vaultra_client_state table. Values are loaded once and served from
// memory; every change is written through before it becomes visible.
type ClientStateStore struct {
	db   *bun.DB
	repo repository.Repository[*clientStateRecord]

	// WriteTimeout bounds each write-through statement.
	WriteTimeout time.Duration

	mu     sync.RWMutex
	values map[string]string
	closer func() error
}

func NewClientStateStore(ctx context.Context, db *bun.DB) (*ClientStateStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*clientStateRecord](db, clientStateHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid client state repository wiring: %w", err)
		}
	}
	store := &ClientStateStore{
		db:           db,
		repo:         repo,
		WriteTimeout: 5 * time.Second,
		values:       map[string]string{},
	}
	if err := store.Reload(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Reload replaces the in-memory view with the persisted rows.
func (s *ClientStateStore) Reload(ctx context.Context) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: client state store is not configured")
	}
	records, _, err := s.repo.List(ctx, repository.OrderBy("updated_at ASC"))
	if err != nil {
		return fmt.Errorf("sqlstore: load client state: %w", err)
	}
	values := make(map[string]string, len(records))
	for _, record := range records {
		if record == nil || !knownClientStateKey(record.Key) {
			continue
		}
		if strings.TrimSpace(record.Value) != "" {
			values[record.Key] = record.Value
		}
	}
	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func (s *ClientStateStore) Credential() (string, bool) {
	return s.get(core.CredentialKeyToken)
}

func (s *ClientStateStore) SetCredential(token string) error {
	return s.put(core.CredentialKeyToken, token)
}

func (s *ClientStateStore) ClearCredential() error {
	return s.put(core.CredentialKeyToken, "")
}

func (s *ClientStateStore) SelectedAccount() (string, bool) {
	return s.get(core.CredentialKeySelectedAccount)
}

func (s *ClientStateStore) SetSelectedAccount(id string) error {
	return s.put(core.CredentialKeySelectedAccount, id)
}

// Close releases the underlying connection when the store owns it.
func (s *ClientStateStore) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *ClientStateStore) get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok && value != ""
}

func (s *ClientStateStore) put(key, value string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: client state store is not configured")
	}
	ctx := context.Background()
	if s.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.WriteTimeout)
		defer cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(value) == "" {
		if _, err := s.db.NewDelete().
			Model((*clientStateRecord)(nil)).
			Where("key = ?", key).
			Exec(ctx); err != nil {
			return fmt.Errorf("sqlstore: clear %s: %w", key, err)
		}
		delete(s.values, key)
		return nil
	}

	record := &clientStateRecord{
		ID:        uuid.NewString(),
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("sqlstore: save %s: %w", key, err)
	}
	s.values[key] = value
	return nil
}

func knownClientStateKey(key string) bool {
	return key == core.CredentialKeyToken || key == core.CredentialKeySelectedAccount
}
