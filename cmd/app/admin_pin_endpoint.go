package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type sendPinRequest struct {
	Email string `json:"email"`
}

type verifyPinRequest struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

func sendAdminPinHandler(svc *services.AdminAuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(sendPinRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		if err := svc.IssuePin(c.Request().Context(), req.Email); err != nil {
			return pinError(c, err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "PIN sent successfully",
		})
	}
}

func verifyAdminPinHandler(svc *services.AdminAuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(verifyPinRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		user, err := svc.VerifyPin(c.Request().Context(), req.Email, req.Pin)
		if err != nil {
			return pinError(c, err)
		}

		token, expiresAt, err := middleware.GenerateMagicLink(user.ID, user.Email)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{
				"error": "failed to generate session",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"session": model.SessionBootstrap{
				Token:     token,
				ExpiresAt: expiresAt,
			},
			"message": "PIN verified successfully",
		})
	}
}

// pinError maps the auth error taxonomy onto HTTP statuses
func pinError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrAuthenticationFailed):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrEmailDelivery),
		errors.Is(err, services.ErrIdentityProvider):
		status = http.StatusBadGateway
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func registerAdminPinRoutes(g *echo.Group, svc *services.AdminAuthService) {
	// issuance is rate-limited per IP to slow code-guessing and mail abuse
	limiter := echomw.RateLimiter(echomw.NewRateLimiterMemoryStoreWithConfig(
		echomw.RateLimiterMemoryStoreConfig{Rate: rate.Limit(1), Burst: 5},
	))

	g.POST("/send-admin-pin", sendAdminPinHandler(svc), limiter)
	g.POST("/verify-admin-pin", verifyAdminPinHandler(svc))
}
