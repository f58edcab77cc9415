package ports

import (
	"context"
	"encoding/json"
)

// ScopeStore is the durable mapping from (clientID, user) to a granted scope.
// Save must be atomic per key: two concurrent saves may race on who wins, but
// never on whether a row exists.
type ScopeStore interface {
	GetScope(ctx context.Context, clientID, user string) ([]string, error)
	SaveScope(ctx context.Context, clientID, user string, scope []string) error
}

// MetadataStore persists the per-user metadata object. Get returns
// core.ErrNotFound when the user has never stored metadata.
type MetadataStore interface {
	GetMetadata(ctx context.Context, user string) (json.RawMessage, error)
	SetMetadata(ctx context.Context, user string, metadata json.RawMessage) error
}
