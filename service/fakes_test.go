package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(12)
}

type fakeBroadcaster struct {
	result json.RawMessage
	err    error

	calls      int
	gotOps     []core.Operation
	gotPosting string
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context, ops []core.Operation, postingKey string) (json.RawMessage, error) {
	f.calls++
	f.gotOps = ops
	f.gotPosting = postingKey
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeEvents struct {
	err        error
	broadcasts int
	grants     int
}

func (f *fakeEvents) PublishBroadcast(ctx context.Context, user, clientID string, operations []string) error {
	f.broadcasts++
	return f.err
}

func (f *fakeEvents) PublishScopeGranted(ctx context.Context, user, clientID string, scope []string) error {
	f.grants++
	return f.err
}

type fakeDirectory struct {
	accounts []core.Account
	err      error
}

func (f *fakeDirectory) GetAccounts(ctx context.Context, names []string) ([]core.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts, nil
}

type fakeTokenizer struct {
	loginToken string
	err        error
}

func (f *fakeTokenizer) IssueCredential(cred core.Credential, ttl time.Duration) (string, error) {
	return "", nil
}

func (f *fakeTokenizer) ParseCredential(token string) (core.Credential, error) {
	return core.Credential{}, nil
}

func (f *fakeTokenizer) IssueLoginToken(username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.loginToken, nil
}

type fakeMemo struct {
	code string
	err  error

	gotRecipient string
	gotPlaintext string
}

func (f *fakeMemo) Encode(recipientPub, plaintext string) (string, error) {
	f.gotRecipient = recipientPub
	f.gotPlaintext = plaintext
	if f.err != nil {
		return "", f.err
	}
	return f.code, nil
}

func testAccount(name string) core.Account {
	return core.Account{
		Name:    name,
		MemoKey: "memo-pub",
		Posting: core.Authority{KeyAuths: []core.KeyAuth{{Key: "posting-pub", Weight: 1}}},
		Active:  core.Authority{KeyAuths: []core.KeyAuth{{Key: "active-pub", Weight: 1}}},
		Owner:   core.Authority{KeyAuths: []core.KeyAuth{{Key: "owner-pub", Weight: 1}}},
	}
}
