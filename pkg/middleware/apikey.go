package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// APIKeyMiddleware guards the mobile auth endpoints with a shared static key
// sent in the X-API-Key header.
type APIKeyMiddleware struct {
	apiKey string
	logger *zap.Logger
}

func NewAPIKeyMiddleware(apiKey string, logger *zap.Logger) *APIKeyMiddleware {
	return &APIKeyMiddleware{apiKey: apiKey, logger: logger}
}

func (m *APIKeyMiddleware) Verify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get("X-API-Key")
		if m.apiKey == "" || key == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			m.logger.Warn("rejected request with invalid API key",
				zap.String("uri", c.Request().RequestURI))
			return utils.ErrorResponse(c, apperrors.ErrInvalidAPIKey, m.logger)
		}
		return next(c)
	}
}
