package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/service"
)

// Pinger is the liveness dependency of the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the HTTP handlers for the broker endpoints.
type Handlers struct {
	profile   *service.ProfileService
	broadcast *service.BroadcastService
	challenge *service.ChallengeService
	scope     *service.ScopeService
	pinger    Pinger
}

// NewHandlers creates the endpoint handlers. pinger may be nil when no durable
// store backs the deployment.
func NewHandlers(
	profile *service.ProfileService,
	broadcast *service.BroadcastService,
	challenge *service.ChallengeService,
	scope *service.ScopeService,
	pinger Pinger,
) *Handlers {
	return &Handlers{
		profile:   profile,
		broadcast: broadcast,
		challenge: challenge,
		scope:     scope,
		pinger:    pinger,
	}
}

// Me returns the authenticated user's profile.
func (h *Handlers) Me(c *gin.Context) {
	cred, ok := credentialFrom(c)
	if !ok {
		respondError(c, core.NewServerError("credential missing from request context"))
		return
	}

	profile, err := h.profile.Me(c.Request.Context(), cred)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe stores the caller's user_metadata object and echoes the profile.
func (h *Handlers) UpdateMe(c *gin.Context) {
	cred, ok := credentialFrom(c)
	if !ok {
		respondError(c, core.NewServerError("credential missing from request context"))
		return
	}

	var req struct {
		UserMetadata json.RawMessage `json:"user_metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, core.NewInvalidRequest("User metadata must be an object"))
		return
	}

	profile, err := h.profile.UpdateMetadata(c.Request.Context(), cred, req.UserMetadata)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Broadcast authorizes and relays an operation batch.
func (h *Handlers) Broadcast(c *gin.Context) {
	cred, ok := credentialFrom(c)
	if !ok {
		respondError(c, core.NewServerError("credential missing from request context"))
		return
	}

	var req struct {
		Operations []core.Operation `json:"operations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, core.NewInvalidRequest("Operations must be an array of [name, body] pairs"))
		return
	}

	result, err := h.broadcast.Broadcast(c.Request.Context(), cred, req.Operations)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// LoginChallenge mints an encrypted challenge code for a username.
func (h *Handlers) LoginChallenge(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		respondError(c, core.NewInvalidRequest(core.DescUsernameRequired))
		return
	}
	role := c.Query("role")

	challenge, err := h.challenge.IssueChallenge(c.Request.Context(), username, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// SaveScope persists a scope grant for (client_id, user).
func (h *Handlers) SaveScope(c *gin.Context) {
	cred, ok := credentialFrom(c)
	if !ok {
		respondError(c, core.NewServerError("credential missing from request context"))
		return
	}

	err := h.scope.Save(c.Request.Context(), cred, c.Query("client_id"), c.Query("scope"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Healthz reports process liveness and store reachability.
func (h *Handlers) Healthz(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps service errors onto the OAuth-style wire contract.
func respondError(c *gin.Context, err error) {
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{
			"error":             apiErr.Code,
			"error_description": apiErr.Description,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":             "server_error",
		"error_description": err.Error(),
	})
}
