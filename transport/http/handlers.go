package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/drip/core"
	"github.com/layer-3/drip/service"
)

// Config holds transport-level settings
type Config struct {
	ExplorerURL   string // Block explorer base URL, no trailing slash
	DefaultDomain string // Fallback when the request carries no Host header
	DefaultOrigin string // Fallback when the request carries no Origin header
}

// Handlers contains the HTTP handlers for auth and faucet endpoints
type Handlers struct {
	auth   *service.AuthService
	faucet *service.FaucetService
	cfg    Config
}

// NewHandlers creates new handlers
func NewHandlers(auth *service.AuthService, faucet *service.FaucetService, cfg Config) *Handlers {
	return &Handlers{
		auth:   auth,
		faucet: faucet,
		cfg:    cfg,
	}
}

// Message handles POST /auth/message: issue a SIWE challenge
func (h *Handlers) Message(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Address required",
			"message": "You must provide a wallet address",
		})
		return
	}

	domain := c.Request.Host
	origin := c.GetHeader("Origin")
	if domain == "" {
		domain = h.cfg.DefaultDomain
		if origin == "" {
			origin = h.cfg.DefaultOrigin
		}
	}
	if origin == "" {
		origin = "http://" + domain
	}

	message, err := h.auth.IssueChallenge(c.Request.Context(), req.Address, domain, origin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Server error",
			"message": "Could not generate the sign-in message",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"address": req.Address,
	})
}

// Signin handles POST /auth/signin: verify a signed challenge
func (h *Handlers) Signin(c *gin.Context) {
	var req struct {
		Message   string `json:"message" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Incomplete data",
			"message": "Both the message and the signature are required",
		})
		return
	}

	token, address, err := h.auth.Verify(c.Request.Context(), req.Message, req.Signature)
	if err != nil {
		status := http.StatusUnauthorized
		errorMsg := "Authentication error"
		msg := "The signature could not be verified"

		switch {
		case errors.Is(err, core.ErrChallengeNotFound):
			errorMsg = "Message not found"
			msg = "You must request a sign-in message first"
		case errors.Is(err, core.ErrChallengeExpired):
			errorMsg = "Message expired"
			msg = "The sign-in message has expired. Request a new one"
		case errors.Is(err, core.ErrInvalidSignature):
			errorMsg = "Invalid signature"
			msg = "The signature could not be verified"
		case errors.Is(err, core.ErrInvalidMessage):
			errorMsg = "Invalid message"
			msg = "The sign-in message could not be parsed"
		}

		c.JSON(status, gin.H{"error": errorMsg, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"address": address,
		"message": "Authentication successful",
	})
}

// Verify handles GET /auth/verify: report whether the bearer token is valid
func (h *Handlers) Verify(c *gin.Context) {
	session, err := h.auth.ValidateToken(bearerToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"address": session.Address,
	})
}

// Claim handles POST /faucet/claim: relay the claim transaction
func (h *Handlers) Claim(c *gin.Context) {
	address := c.GetString("userAddress")

	result, err := h.faucet.Claim(c.Request.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrAlreadyClaimed):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Tokens already claimed",
				"message": "This address has already claimed its tokens",
			})
		case errors.Is(err, core.ErrInsufficientFunds):
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Transaction error",
				"message": "The faucet does not have enough ETH for gas",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Transaction error",
				"message": "The transaction could not be completed on the blockchain",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"txHash":   result.TxHash,
		"message":  "Tokens claimed successfully",
		"explorer": h.cfg.ExplorerURL + "/tx/" + result.TxHash,
	})
}

// Status handles GET /faucet/status/:address: per-address faucet state
func (h *Handlers) Status(c *gin.Context) {
	address := c.Param("address")
	tokenAddress := c.GetString("userAddress")

	if !strings.EqualFold(address, tokenAddress) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "You can only query the status of your own address",
		})
		return
	}

	status, err := h.faucet.Status(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Server error",
			"message": "Could not fetch the faucet status",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":    status.Address,
		"hasClaimed": status.HasClaimed,
		"balance":    status.Balance,
		"totalUsers": status.TotalUsers,
		"users":      status.Users,
	})
}

// Info handles GET /faucet/info: public faucet information
func (h *Handlers) Info(c *gin.Context) {
	info := h.faucet.Info(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"contractAddress": info.ContractAddress,
		"network":         info.Network,
		"chainId":         info.ChainID,
		"totalUsers":      info.TotalUsers,
		"backendAddress":  info.FunderAddress,
		"backendBalance":  info.FunderBalance,
		"message":         "Faucet DApp - Claim your test tokens",
	})
}

// bearerToken extracts the token from the Authorization header, or ""
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
