package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type addCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"quantity"`
}

type updateCartRequest struct {
	Qty int `json:"quantity" validate:"gt=0"`
}

type checkoutRequest struct {
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")
	p.Use(middleware.JWTMiddleware())

	// GET cart
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		cart, err := cs.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cart)
	})

	// ADD item
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := cs.Add(c.Request().Context(), claims.UserID, req.ProductID, req.Qty); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "added"})
	})

	// UPDATE quantity
	p.PUT("/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(updateCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := cs.Update(c.Request().Context(), claims.UserID, c.Param("productid"), req.Qty); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
	})

	// REMOVE item
	p.DELETE("/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := cs.Remove(c.Request().Context(), claims.UserID, c.Param("productid")); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "removed"})
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := cs.Clear(c.Request().Context(), claims.UserID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "cleared"})
	})

	// CHECKOUT
	p.POST("/checkout", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(checkoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		order, err := cs.Checkout(c.Request().Context(), claims.UserID, claims.Email, req.Phone, req.Address)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"order_id": order.ID,
			"total":    order.Total,
			"status":   order.Status,
		})
	})
}
