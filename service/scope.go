package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/internal/logger"
	"github.com/adcpm/sc2/ports"
)

// ScopeOffline is the special marker a client may request alongside operation
// names; it is not an operation itself and is always accepted.
const ScopeOffline = "offline"

// ScopeService validates and persists per-(client, user) scope grants.
type ScopeService struct {
	store      ports.ScopeStore
	events     ports.EventPublisher
	authorized []string
	logger     *logger.Logger
}

// NewScopeService creates a scope service validating entries against the
// configured authorized-operations list.
func NewScopeService(store ports.ScopeStore, events ports.EventPublisher, authorized []string, logger *logger.Logger) *ScopeService {
	return &ScopeService{
		store:      store,
		events:     events,
		authorized: authorized,
		logger:     logger,
	}
}

// Save validates the comma-joined scope string and upserts the grant for
// (clientID, user). The grant is replaced wholesale, never merged.
func (s *ScopeService) Save(ctx context.Context, cred core.Credential, clientID, scope string) error {
	if scope == "" {
		return core.NewInvalidRequest(core.DescScopeRequired)
	}
	if clientID == "" {
		return core.NewInvalidRequest(core.DescClientRequired)
	}

	entries := strings.Split(scope, ",")
	for _, entry := range entries {
		if !s.isAuthorized(entry) {
			return core.NewInvalidRequest(core.DescScopeInvalid)
		}
	}

	if err := s.store.SaveScope(ctx, clientID, cred.User, entries); err != nil {
		s.logger.Error("failed to save scope grant",
			"client_id", clientID,
			"user", cred.User,
			"error", err.Error())
		return &core.APIError{Status: http.StatusBadRequest, Code: "server_error", Description: err.Error()}
	}

	s.logger.Info("scope grant saved",
		"client_id", clientID,
		"user", cred.User,
		"scope", entries)

	if err := s.events.PublishScopeGranted(ctx, cred.User, clientID, entries); err != nil {
		s.logger.Warn("failed to publish scope event",
			"client_id", clientID,
			"user", cred.User,
			"error", err.Error())
	}

	return nil
}

// isAuthorized accepts an entry iff it is a configured operation name or the
// literal offline marker.
func (s *ScopeService) isAuthorized(entry string) bool {
	if entry == ScopeOffline {
		return true
	}
	for _, name := range s.authorized {
		if entry == name {
			return true
		}
	}
	return false
}
