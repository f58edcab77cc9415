package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/ports"
)

type grantKey struct {
	clientID string
	user     string
}

// MemoryStore is an in-memory implementation of the scope and metadata stores,
// used in tests and single-node development setups. The mutex serializes the
// create-vs-update decision per key.
type MemoryStore struct {
	mu       sync.RWMutex
	grants   map[grantKey][]string
	metadata map[string]json.RawMessage
}

var (
	_ ports.ScopeStore    = (*MemoryStore)(nil)
	_ ports.MetadataStore = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		grants:   make(map[grantKey][]string),
		metadata: make(map[string]json.RawMessage),
	}
}

func (s *MemoryStore) GetScope(ctx context.Context, clientID, user string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scope, ok := s.grants[grantKey{clientID, user}]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]string(nil), scope...), nil
}

func (s *MemoryStore) SaveScope(ctx context.Context, clientID, user string, scope []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grants[grantKey{clientID, user}] = append([]string(nil), scope...)
	return nil
}

func (s *MemoryStore) GetMetadata(ctx context.Context, user string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metadata, ok := s.metadata[user]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append(json.RawMessage(nil), metadata...), nil
}

func (s *MemoryStore) SetMetadata(ctx context.Context, user string, metadata json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metadata[user] = append(json.RawMessage(nil), metadata...)
	return nil
}
