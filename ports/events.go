package ports

import "context"

// EventPublisher notifies other components about completed broker actions.
// Publishing is best effort: callers log failures and carry on.
type EventPublisher interface {
	PublishBroadcast(ctx context.Context, user, clientID string, operations []string) error
	PublishScopeGranted(ctx context.Context, user, clientID string, scope []string) error
}
