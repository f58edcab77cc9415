package tokenizer

import "github.com/golang-jwt/jwt/v5"

// CredentialClaims are the claims carried by an access credential.
type CredentialClaims struct {
	jwt.RegisteredClaims
	Role  string   `json:"role"`
	Proxy string   `json:"proxy"`
	Scope []string `json:"scope,omitempty"`
}

// LoginClaims are the claims of a one-time login token.
type LoginClaims struct {
	jwt.RegisteredClaims
}
