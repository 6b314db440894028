package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

func registerAnalyticsRoutes(g *echo.Group, as *services.AnalyticsService) {
	admin := g.Group("/admin/analytics")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminOnly)

	admin.GET("/stats", func(c echo.Context) error {
		stats, err := as.Stats(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, stats)
	})

	admin.GET("/top-products", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		top, err := as.TopProducts(c.Request().Context(), limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, top)
	})
}
