package core

// Credential roles. RoleApp marks tokens issued to an application acting for a
// user through a client app account; it unlocks metadata access and broadcasting.
const (
	RoleApp  = "app"
	RoleUser = "user"
)

// Credential is the decoded bearer token presented on every request. It is
// minted by the external token issuer and never mutated here.
type Credential struct {
	// User is the subject account the credential acts for.
	User string

	// Proxy is the client app account the credential was issued to. It doubles
	// as the client_id for scope grants.
	Proxy string

	// Role is one of the credential roles above.
	Role string

	// Scope is the sequence of operation names the credential carries. Empty
	// means the full configured default scope applies.
	Scope []string
}

// EffectiveScope resolves the carried scope against the configured defaults:
// an empty carried scope falls back to the full default operation list.
func (c Credential) EffectiveScope(defaults []string) []string {
	if len(c.Scope) == 0 {
		return defaults
	}
	return c.Scope
}
