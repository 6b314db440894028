package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type exchangeRequest struct {
	Token string `json:"token"`
}

// exchangeHandler swaps a magic-link artifact for a session token. Role
// membership is resolved here, not during PIN verification.
func exchangeHandler(profiles *services.ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(exchangeRequest)
		if err := c.Bind(req); err != nil || req.Token == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "token required",
			})
		}

		claims, err := middleware.ParseMagicLink(req.Token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "invalid or expired token",
			})
		}

		role, err := profiles.RoleFor(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not resolve role",
			})
		}

		token, err := middleware.GenerateToken(claims.UserID, claims.Email, role, 24)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user": echo.Map{
				"id":    claims.UserID,
				"email": claims.Email,
				"role":  role,
			},
		})
	}
}

// meHandler returns the authenticated user's info
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":    claims.UserID,
			"email": claims.Email,
			"role":  claims.Role,
			"exp":   claims.ExpiresAt,
		})
	}
}

func registerAuthRoutes(g *echo.Group, profiles *services.ProfileService) {
	auth := g.Group("/auth")

	auth.POST("/exchange", exchangeHandler(profiles))

	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", meHandler())
}
