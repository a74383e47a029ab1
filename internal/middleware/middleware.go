package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sweeply/internal/auth"
	"sweeply/internal/models"
	"sweeply/internal/repository"
)

// Context key under which JWTAuth stores the authenticated account ID.
const AccountIDKey = "account_id"

// JWTAuth validates the Authorization bearer token and stores the account
// ID in the request context.
func JWTAuth(tokens *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, models.APIResponse{
					Status: false,
					Msg:    "Authorization token is required",
				})
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.APIResponse{
					Status: false,
					Msg:    "Invalid token",
				})
			}

			c.Set(AccountIDKey, claims.Sub)
			return next(c)
		}
	}
}

// AccountID returns the authenticated account ID, or "" when absent.
func AccountID(c echo.Context) string {
	id, _ := c.Get(AccountIDKey).(string)
	return id
}

// APILogger writes an audit row per request to the api_logs table.
func APILogger(logs *repository.APILogRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			entry := &models.APILog{
				AccountID: AccountID(c),
				Method:    c.Request().Method,
				Path:      c.Request().URL.Path,
				IP:        c.RealIP(),
				Status:    c.Response().Status,
			}
			// Async, non-blocking
			go func() {
				_ = logs.Create(entry)
			}()

			return err
		}
	}
}

// CORS configures CORS headers.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Access-Control-Allow-Origin", "*")
			c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")
			if c.Request().Method == "OPTIONS" {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
