package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/ports"
)

const credentialKey = "credential"

// Authenticate validates the bearer credential and stores it in the request
// context. A non-empty requiredRole additionally restricts the route to
// credentials carrying that role.
func Authenticate(tokenizer ports.Tokenizer, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == "" || token == auth {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":             "invalid_request",
				"error_description": "Missing bearer credential",
			})
			return
		}

		cred, err := tokenizer.ParseCredential(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":             "invalid_request",
				"error_description": "Invalid bearer credential",
			})
			return
		}

		if requiredRole != "" && cred.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized_client",
				"error_description": "This access_token does not carry the required role",
			})
			return
		}

		c.Set(credentialKey, cred)
		c.Next()
	}
}

// credentialFrom returns the credential stored by the Authenticate middleware.
func credentialFrom(c *gin.Context) (core.Credential, bool) {
	v, ok := c.Get(credentialKey)
	if !ok {
		return core.Credential{}, false
	}
	cred, ok := v.(core.Credential)
	return cred, ok
}
