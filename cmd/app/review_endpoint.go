package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type reviewRequest struct {
	Name    string `json:"name" validate:"required"`
	Comment string `json:"comment" validate:"required"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
}

func registerReviewRoutes(g *echo.Group, rs *services.ReviewService) {
	// public: approved reviews only
	g.GET("/reviews", func(c echo.Context) error {
		reviews, err := rs.ListPublic(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if reviews == nil {
			reviews = []model.Review{}
		}
		return c.JSON(http.StatusOK, reviews)
	})

	// authenticated: submit a review (starts unapproved)
	protected := g.Group("/reviews")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(reviewRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		id, err := rs.Submit(c.Request().Context(), &model.Review{
			UserID:  claims.UserID,
			Name:    req.Name,
			Comment: req.Comment,
			Rating:  req.Rating,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "review submitted for approval"})
	})

	admin := g.Group("/admin/reviews")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminOnly)

	admin.GET("", func(c echo.Context) error {
		reviews, err := rs.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if reviews == nil {
			reviews = []model.Review{}
		}
		return c.JSON(http.StatusOK, reviews)
	})

	admin.PUT("/:id/approve", func(c echo.Context) error {
		if err := rs.Approve(c.Request().Context(), c.Param("id")); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "review approved"})
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		if err := rs.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "review deleted"})
	})
}
