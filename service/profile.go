package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/internal/logger"
	"github.com/adcpm/sc2/ports"
)

// Profile is the /me response shape. The duplicated identity fields mirror the
// historical API contract consumed by existing clients.
type Profile struct {
	User     string          `json:"user"`
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Account  json.RawMessage `json:"account"`
	Scope    []string        `json:"scope"`
	Metadata json.RawMessage `json:"user_metadata,omitempty"`
}

// ProfileService serves account profiles and the per-user metadata object.
type ProfileService struct {
	directory       ports.AccountDirectory
	metadata        ports.MetadataStore
	defaultScope    []string
	metadataMaxSize int
	logger          *logger.Logger
}

func NewProfileService(
	directory ports.AccountDirectory,
	metadata ports.MetadataStore,
	defaultScope []string,
	metadataMaxSize int,
	logger *logger.Logger,
) *ProfileService {
	return &ProfileService{
		directory:       directory,
		metadata:        metadata,
		defaultScope:    defaultScope,
		metadataMaxSize: metadataMaxSize,
		logger:          logger,
	}
}

// Me resolves the credential subject's account record and effective scope.
// The stored metadata object is included only for the elevated app role.
func (s *ProfileService) Me(ctx context.Context, cred core.Credential) (Profile, error) {
	profile, err := s.lookup(ctx, cred)
	if err != nil {
		return Profile{}, err
	}

	if cred.Role == core.RoleApp {
		meta, err := s.metadata.GetMetadata(ctx, cred.User)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return Profile{}, core.NewServerError(err.Error())
		}
		profile.Metadata = meta
	}

	return profile, nil
}

// UpdateMetadata validates and stores the caller's metadata object, then echoes
// the refreshed profile. The object must be a JSON object and its compact
// serialization must not exceed the configured byte limit.
func (s *ProfileService) UpdateMetadata(ctx context.Context, cred core.Credential, metadata json.RawMessage) (Profile, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(metadata, &obj); err != nil {
		return Profile{}, core.NewInvalidRequest("User metadata must be an object")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, metadata); err != nil {
		return Profile{}, core.NewInvalidRequest("User metadata must be an object")
	}
	if compact.Len() > s.metadataMaxSize {
		return Profile{}, core.NewPayloadTooLarge(fmt.Sprintf(
			"User metadata object must not exceed %d bytes", s.metadataMaxSize))
	}

	s.logger.Debug("storing user metadata",
		"user", cred.User,
		"size", compact.Len())

	stored := json.RawMessage(append([]byte(nil), compact.Bytes()...))
	if err := s.metadata.SetMetadata(ctx, cred.User, stored); err != nil {
		return Profile{}, core.NewServerError(err.Error())
	}

	profile, err := s.lookup(ctx, cred)
	if err != nil {
		return Profile{}, err
	}
	profile.Metadata = stored
	return profile, nil
}

func (s *ProfileService) lookup(ctx context.Context, cred core.Credential) (Profile, error) {
	accounts, err := s.directory.GetAccounts(ctx, []string{cred.User})
	if err != nil {
		return Profile{}, core.NewServerError(err.Error())
	}
	if len(accounts) == 0 {
		return Profile{}, core.NewServerError(fmt.Sprintf("account @%s not found", cred.User))
	}

	return Profile{
		User:    cred.User,
		ID:      cred.User,
		Name:    cred.User,
		Account: accounts[0].Raw,
		Scope:   cred.EffectiveScope(s.defaultScope),
	}, nil
}
