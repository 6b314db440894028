package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orders, err := os.ListMine(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if orders == nil {
			orders = []model.Order{}
		}
		return c.JSON(http.StatusOK, orders)
	})

	admin := g.Group("/admin/orders")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminOnly)

	admin.GET("", func(c echo.Context) error {
		orders, err := os.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if orders == nil {
			orders = []model.Order{}
		}
		return c.JSON(http.StatusOK, orders)
	})

	admin.PUT("/:id/status", func(c echo.Context) error {
		req := new(orderStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := os.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
	})
}
