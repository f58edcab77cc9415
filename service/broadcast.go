package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/internal/logger"
	"github.com/adcpm/sc2/ports"
)

const genericBroadcastFailure = "Transaction broadcast failed"

// BroadcastService orchestrates authorization of an operation batch and the
// hand-off to the external broadcaster.
type BroadcastService struct {
	broadcaster  ports.Broadcaster
	events       ports.EventPublisher
	postingKey   string
	defaultScope []string
	logger       *logger.Logger
}

// NewBroadcastService creates a broadcast service. postingKey is the
// process-level posting-authority secret every broadcast is signed with.
func NewBroadcastService(
	broadcaster ports.Broadcaster,
	events ports.EventPublisher,
	postingKey string,
	defaultScope []string,
	logger *logger.Logger,
) *BroadcastService {
	return &BroadcastService{
		broadcaster:  broadcaster,
		events:       events,
		postingKey:   postingKey,
		defaultScope: defaultScope,
		logger:       logger,
	}
}

// Broadcast validates every operation of the batch against the credential's
// effective scope and authorship, then forwards the batch to the broadcaster.
// The broadcaster's raw result is returned unchanged on success.
func (s *BroadcastService) Broadcast(ctx context.Context, cred core.Credential, operations []core.Operation) (json.RawMessage, error) {
	if len(operations) == 0 {
		return nil, core.NewInvalidRequest(core.DescOperationsRequired)
	}

	scope := cred.EffectiveScope(s.defaultScope)
	decision := core.Authorize(scope, operations, cred.User)

	switch decision.Kind {
	case core.ScopeDenied:
		return nil, core.NewInvalidScope(fmt.Sprintf(
			"The access_token scope does not allow the following operation(s): %s",
			strings.Join(decision.ViolatingScopes, ", "),
		))
	case core.AuthorDenied:
		return nil, core.NewUnauthorizedClient(fmt.Sprintf(
			"This access_token allow you to broadcast transaction only for the account @%s",
			cred.User,
		))
	}

	s.logger.Debug("broadcasting transaction",
		"user", cred.User,
		"proxy", cred.Proxy,
		"operations", len(operations))

	result, err := s.broadcaster.Broadcast(ctx, operations, s.postingKey)
	if err != nil {
		s.logger.Error("transaction broadcast failed",
			"user", cred.User,
			"error", err.Error())
		message := err.Error()
		if message == "" {
			message = genericBroadcastFailure
		}
		return nil, core.NewServerError(message)
	}

	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = op.Name
	}
	if err := s.events.PublishBroadcast(ctx, cred.User, cred.Proxy, names); err != nil {
		// The transaction is already on chain; the event is advisory.
		s.logger.Warn("failed to publish broadcast event",
			"user", cred.User,
			"error", err.Error())
	}

	return result, nil
}
