package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jason-czar/Sportstreams/internal/config"
	"github.com/jason-czar/Sportstreams/internal/service"
	"github.com/jason-czar/Sportstreams/pkg/response"
)

// AuthHandler exposes registration, login, and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
	cfg  config.AuthConfig
}

func NewAuthHandler(auth *service.AuthService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		cfg:  cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine, session *SessionMiddleware) {
	api := r.Group("/api/v1/auth")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.GET("/me", session.RequireSession(), h.Me)
		api.POST("/verify-email", h.VerifyEmail)
		api.POST("/reset-password", h.ResetPassword)
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid registration payload")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid login payload")
		return
	}

	session, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetCookie(h.cfg.CookieName, session.Token,
		int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	response.Success(c, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cfg.CookieName)
	if err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			writeError(c, err)
			return
		}
	}

	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	response.Success(c, gin.H{"logged_out": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Unauthorized(c, "valid session required")
		return
	}
	response.Success(c, user)
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	writeError(c, h.auth.VerifyEmail(c.Request.Context(), req.Token))
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	writeError(c, h.auth.ResetPasswordByToken(c.Request.Context(), req.Token, req.NewPassword))
}
