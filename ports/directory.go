package ports

import (
	"context"

	"github.com/adcpm/sc2/core"
)

// AccountDirectory resolves usernames to their account records, including the
// posting, active and memo public keys.
type AccountDirectory interface {
	GetAccounts(ctx context.Context, names []string) ([]core.Account, error)
}
