package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

func registerProfileRoutes(g *echo.Group, ps *services.ProfileService) {
	p := g.Group("/profile")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		profile, err := ps.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, profile)
	})

	p.PUT("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(updateProfileRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := ps.Update(c.Request().Context(), claims.UserID, req.FullName, req.Phone, req.Address); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
	})
}
