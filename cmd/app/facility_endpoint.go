package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Visithrand/infant-jesus-dvk/internal/middleware"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"
	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
)

func registerFacilityRoutes(g *echo.Group, fs *services.FacilityService) {

	// PUBLIC — list facilities, latest first
	g.GET("/facilities", func(c echo.Context) error {
		list, err := fs.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// PUBLIC — keyword search over name and description
	g.GET("/facilities/search", func(c echo.Context) error {
		list, err := fs.Search(c.Request().Context(), c.QueryParam("keyword"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// PUBLIC — get facility
	g.GET("/facilities/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		f, err := fs.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
		}
		return c.JSON(http.StatusOK, f)
	})

	// PROTECTED — admin write operations, multipart with optional image
	admin := g.Group("/facilities/admin", middleware.RequireAdmin)

	admin.POST("", func(c echo.Context) error {
		name := c.FormValue("name")
		var description *string
		if v := c.FormValue("description"); v != "" {
			description = &v
		}

		filename, img, err := formImage(c, "image")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image"})
		}
		var content io.Reader
		if img != nil {
			defer img.Close()
			content = img
		}

		f, err := fs.Create(c.Request().Context(), name, description, filename, content)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, f)
	})

	admin.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}

		name := c.FormValue("name")
		var description *string
		if v := c.FormValue("description"); v != "" {
			description = &v
		}

		filename, img, err := formImage(c, "image")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image"})
		}
		var content io.Reader
		if img != nil {
			defer img.Close()
			content = img
		}

		f, err := fs.Update(c.Request().Context(), id, name, description, filename, content)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, f)
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := fs.Delete(c.Request().Context(), id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})
}
