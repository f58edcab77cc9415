package ports

import (
	"time"

	"github.com/adcpm/sc2/core"
)

// Tokenizer converts between bearer tokens and domain credentials, and mints
// the one-time login tokens embedded in challenge codes.
type Tokenizer interface {
	// IssueCredential mints a bearer token for the credential, valid for ttl.
	IssueCredential(cred core.Credential, ttl time.Duration) (string, error)

	// ParseCredential validates a bearer token and returns the credential it
	// carries.
	ParseCredential(token string) (core.Credential, error)

	// IssueLoginToken mints a fresh unique login token bound to username.
	IssueLoginToken(username string) (string, error)
}
