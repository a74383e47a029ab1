package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sweeply/internal/auth"
	"sweeply/internal/models"
	"sweeply/internal/pkg/utils"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	repos  *Repos
	tokens *auth.Manager
	logger *zap.Logger
}

func NewAuthHandler(repos *Repos, tokens *auth.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{repos: repos, tokens: tokens, logger: logger}
}

// Register creates an account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		return errorResponse(c, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
	}

	if _, err := h.repos.Account.FindByEmail(req.Email); err == nil {
		return errorResponse(c, http.StatusConflict, "An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create account")
	}

	account := &models.Account{
		ID:           utils.GenerateUUID(),
		Email:        req.Email,
		PasswordHash: string(hash),
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
	}
	if err := h.repos.Account.Create(account); err != nil {
		h.logger.Error("Failed to create account", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create account")
	}

	token, err := h.tokens.GenerateToken(account.ID)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create account")
	}

	return successResponse(c, "Account created", map[string]interface{}{
		"account": account,
		"token":   token,
	})
}

// Login authenticates an account and returns a token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	account, err := h.repos.Account.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return errorResponse(c, http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return errorResponse(c, http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.tokens.GenerateToken(account.ID)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to log in")
	}

	return successResponse(c, "Logged in", map[string]interface{}{
		"account": account,
		"token":   token,
	})
}
