package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmaplus/pharmacy-api/internal/api/metrics"
	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// AuthHandler handles credential issuance.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an account and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrLoginThrottled):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:    result.Token,
		Role:     result.Role,
		Username: result.Username,
	})
}
