package service

import (
	"context"
	"fmt"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/internal/logger"
	"github.com/adcpm/sc2/ports"
)

// LoginChallenge is a freshly minted challenge: the target username and an
// encrypted code only the holder of that user's private key can open.
type LoginChallenge struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// ChallengeService mints one-time login tokens and wraps them into memo-encoded
// challenge codes addressed to the target account's key.
type ChallengeService struct {
	directory ports.AccountDirectory
	tokenizer ports.Tokenizer
	memo      ports.MemoEncoder
	logger    *logger.Logger
}

func NewChallengeService(
	directory ports.AccountDirectory,
	tokenizer ports.Tokenizer,
	memo ports.MemoEncoder,
	logger *logger.Logger,
) *ChallengeService {
	return &ChallengeService{
		directory: directory,
		tokenizer: tokenizer,
		memo:      memo,
		logger:    logger,
	}
}

// IssueChallenge mints a login token bound to username and encrypts "#"+token
// to the key the role selects: "memo" picks the account memo key, any other
// role picks the first key authority listed for that named role. An empty role
// defaults to "posting".
func (s *ChallengeService) IssueChallenge(ctx context.Context, username, role string) (LoginChallenge, error) {
	if role == "" {
		role = core.RolePosting
	}

	token, err := s.tokenizer.IssueLoginToken(username)
	if err != nil {
		return LoginChallenge{}, fmt.Errorf("failed to issue login token: %w", err)
	}

	accounts, err := s.directory.GetAccounts(ctx, []string{username})
	if err != nil {
		return LoginChallenge{}, fmt.Errorf("failed to resolve account @%s: %w", username, err)
	}
	if len(accounts) == 0 {
		return LoginChallenge{}, fmt.Errorf("account @%s: %w", username, core.ErrAccountNotFound)
	}

	recipient, err := accounts[0].PublicKeyFor(role)
	if err != nil {
		return LoginChallenge{}, err
	}

	// The leading # marks the payload as an encrypted memo for the relaying
	// client; this service never decodes it.
	code, err := s.memo.Encode(recipient, "#"+token)
	if err != nil {
		return LoginChallenge{}, fmt.Errorf("failed to encode challenge: %w", err)
	}

	s.logger.Debug("issued login challenge",
		"username", username,
		"role", role)

	return LoginChallenge{Username: username, Code: code}, nil
}
