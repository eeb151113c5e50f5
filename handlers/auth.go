package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/tfortune6/perimeter-security/envelope"
	"github.com/tfortune6/perimeter-security/models"
)

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	// A malformed body is treated like empty credentials
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debug().Err(err).Msg("login body not decodable")
		req = LoginRequest{}
	}

	token, valid := h.guard.Login(req.Username, req.Password)
	if !valid {
		h.log.Warn().Str("username", req.Username).Msg("login rejected")
		fail(c, envelope.CodeLoginFailed, msgLoginFailed)
		return
	}

	ok(c, models.LoginResult{Token: token})
}

// RequireAuth rejects requests without the session bearer token
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.guard.Authorized(c.Request.Header) {
			fail(c, envelope.CodeUnauthorized, msgUnauthorized)
			return
		}
		c.Next()
	}
}

// GetMe handles GET /api/me
func (h *Handler) GetMe(c *gin.Context) {
	ok(c, h.db.User())
}
