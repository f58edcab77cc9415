package core

import (
	"encoding/json"
	"fmt"
)

// Roles a key authority can be selected by. RoleMemo maps to the account's
// dedicated memo key rather than a weighted authority.
const (
	RoleMemo    = "memo"
	RolePosting = "posting"
	RoleActive  = "active"
	RoleOwner   = "owner"
)

// KeyAuth is a single [public_key, weight] entry of an account authority.
type KeyAuth struct {
	Key    string
	Weight int
}

// UnmarshalJSON decodes the mixed-type pair array used on the wire.
func (k *KeyAuth) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("key auth must be a [key, weight] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &k.Key); err != nil {
		return fmt.Errorf("key auth key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &k.Weight); err != nil {
		return fmt.Errorf("key auth weight: %w", err)
	}
	return nil
}

// MarshalJSON encodes back to the [key, weight] pair form.
func (k KeyAuth) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{k.Key, k.Weight})
}

// Authority is a weighted key set guarding one level of account access.
type Authority struct {
	WeightThreshold int       `json:"weight_threshold"`
	KeyAuths        []KeyAuth `json:"key_auths"`
}

// Account is the externally owned account record resolved through the account
// directory. Raw preserves the full record so it can be passed through to API
// responses unmodified.
type Account struct {
	Name    string    `json:"name"`
	MemoKey string    `json:"memo_key"`
	Owner   Authority `json:"owner"`
	Active  Authority `json:"active"`
	Posting Authority `json:"posting"`

	Raw json.RawMessage `json:"-"`
}

func (a *Account) UnmarshalJSON(data []byte) error {
	type alias Account
	var out alias
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*a = Account(out)
	a.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// PublicKeyFor resolves the recipient public key for a challenge. The memo role
// selects the dedicated memo key; any other role selects the first key authority
// listed for that named authority.
func (a *Account) PublicKeyFor(role string) (string, error) {
	if role == RoleMemo {
		if a.MemoKey == "" {
			return "", fmt.Errorf("account @%s: %w", a.Name, ErrUnknownRole)
		}
		return a.MemoKey, nil
	}

	var auth Authority
	switch role {
	case RolePosting:
		auth = a.Posting
	case RoleActive:
		auth = a.Active
	case RoleOwner:
		auth = a.Owner
	default:
		return "", fmt.Errorf("role %q: %w", role, ErrUnknownRole)
	}
	if len(auth.KeyAuths) == 0 {
		return "", fmt.Errorf("account @%s has no %s key auths: %w", a.Name, role, ErrUnknownRole)
	}
	return auth.KeyAuths[0].Key, nil
}
