package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/middleware"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/services"
)

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description *string `json:"description"`
}

func registerProductRoutes(g *echo.Group, ps *services.ProductService) {
	// public catalog
	g.GET("/products", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		list, err := ps.List(c.Request().Context(), limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if list == nil {
			list = []model.Product{}
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		p, err := ps.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, p)
	})

	// admin-only management
	admin := g.Group("/admin/products")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminOnly)

	admin.POST("", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		id, err := ps.Create(c.Request().Context(), &model.Product{
			Name:        req.Name,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"id": id})
	})

	admin.PUT("/:id", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		err := ps.Update(c.Request().Context(), &model.Product{
			ID:          c.Param("id"),
			Name:        req.Name,
			Price:       req.Price,
			Stock:       req.Stock,
			Description: req.Description,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		if err := ps.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})

	// multipart image upload, stored in the bucket and linked on the product
	admin.POST("/:id/image", func(c echo.Context) error {
		file, err := c.FormFile("image")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file required"})
		}
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read image"})
		}
		defer src.Close()

		url, err := ps.UploadImage(
			c.Request().Context(),
			c.Param("id"),
			file.Filename,
			file.Header.Get("Content-Type"),
			src,
		)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"image_url": url})
	})
}
