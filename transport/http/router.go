package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/drip/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(auth *service.AuthService, faucet *service.FaucetService, cfg Config) *gin.Engine {
	router := gin.Default()

	handlers := NewHandlers(auth, faucet, cfg)

	// Auth routes
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/message", handlers.Message)
		authGroup.POST("/signin", handlers.Signin)
		authGroup.GET("/verify", handlers.Verify)
	}

	// Faucet routes
	faucetGroup := router.Group("/faucet")
	{
		faucetGroup.GET("/info", handlers.Info)

		protected := faucetGroup.Group("")
		protected.Use(AuthMiddleware(auth))
		{
			protected.POST("/claim", handlers.Claim)
			protected.GET("/status/:address", handlers.Status)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Faucet backend with Web3 authentication",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Faucet DApp Backend",
			"version":     "1.0.0",
			"description": "Backend with Web3 authentication (SIWE) for a testnet faucet",
			"endpoints": gin.H{
				"auth": gin.H{
					"POST /auth/message": "Generate a SIWE message to sign",
					"POST /auth/signin":  "Verify a signature and issue a session token",
					"GET /auth/verify":   "Check session token validity",
				},
				"faucet": gin.H{
					"POST /faucet/claim":          "Claim tokens (requires token)",
					"GET /faucet/status/:address": "Per-address status (requires token)",
					"GET /faucet/info":            "General faucet information",
				},
			},
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Endpoint not found",
			"message": "The route " + c.Request.Method + " " + c.Request.URL.Path + " does not exist",
		})
	})

	return router
}
