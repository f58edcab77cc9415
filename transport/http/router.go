package http

import (
	"github.com/gin-gonic/gin"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/ports"
)

// SetupRouter wires the broker endpoints onto a Gin engine.
func SetupRouter(handlers *Handlers, tokenizer ports.Tokenizer) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.PUT("/me", Authenticate(tokenizer, core.RoleApp), handlers.UpdateMe)
		api.GET("/me", Authenticate(tokenizer, ""), handlers.Me)
		api.POST("/me", Authenticate(tokenizer, ""), handlers.Me)

		api.POST("/broadcast", Authenticate(tokenizer, core.RoleApp), handlers.Broadcast)

		api.GET("/login/challenge", handlers.LoginChallenge)
		api.POST("/login/challenge", handlers.LoginChallenge)

		api.GET("/scope/save", Authenticate(tokenizer, ""), handlers.SaveScope)
		api.POST("/scope/save", Authenticate(tokenizer, ""), handlers.SaveScope)
	}

	router.GET("/healthz", handlers.Healthz)

	return router
}
