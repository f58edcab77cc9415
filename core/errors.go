package core

import (
	"errors"
	"net/http"
)

var (
	// ErrAccountNotFound is returned when the account directory does not know the username
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnknownRole is returned when a key authority is requested for a role the account record does not carry
	ErrUnknownRole = errors.New("unknown key role")

	// ErrInvalidCredential is returned when a bearer credential cannot be parsed or verified
	ErrInvalidCredential = errors.New("invalid access credential")

	// ErrNotFound is returned by stores when no row matches the requested key
	ErrNotFound = errors.New("not found")
)

// Error descriptions reused across handlers, matching the OAuth-style wire contract.
const (
	DescScopeRequired      = "error_scope_required"
	DescClientRequired     = "error_client_required"
	DescScopeInvalid       = "error_scope_invalid"
	DescOperationsRequired = "error_operations_required"
	DescUsernameRequired   = "error_username_required"
)

// APIError is a structured request failure carried from the services up to the
// transport layer. Code is the OAuth-style error kind serialized as "error",
// Description as "error_description".
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Description
}

// NewInvalidRequest reports malformed or missing caller input.
func NewInvalidRequest(description string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Description: description}
}

// NewPayloadTooLarge reports caller input over a configured size limit.
func NewPayloadTooLarge(description string) *APIError {
	return &APIError{Status: http.StatusRequestEntityTooLarge, Code: "invalid_request", Description: description}
}

// NewInvalidScope reports operations outside the credential's granted scope.
func NewInvalidScope(description string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: "invalid_scope", Description: description}
}

// NewUnauthorizedClient reports an authorship violation: the credential may only
// act for its own subject account.
func NewUnauthorizedClient(description string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: "unauthorized_client", Description: description}
}

// NewServerError reports a collaborator failure scoped to the single request.
func NewServerError(description string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: "server_error", Description: description}
}
