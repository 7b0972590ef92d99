package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Visithrand/infant-jesus-dvk/internal/middleware"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"
	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
)

func registerAnnouncementRoutes(g *echo.Group, as *services.AnnouncementService) {

	// PUBLIC — active announcements only, latest first
	g.GET("/announcements", func(c echo.Context) error {
		list, err := as.ListActive(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// PUBLIC — keyword search over title and message
	g.GET("/announcements/search", func(c echo.Context) error {
		list, err := as.Search(c.Request().Context(), c.QueryParam("keyword"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// PUBLIC — filter by priority
	g.GET("/announcements/priority/:priority", func(c echo.Context) error {
		list, err := as.ListByPriority(c.Request().Context(), c.Param("priority"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// PUBLIC — get announcement
	g.GET("/announcements/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		a, err := as.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusOK, a)
	})

	createHandler := func(c echo.Context) error {
		req := new(services.AnnouncementInput)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		a, err := as.Create(c.Request().Context(), *req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, a)
	}

	// PUBLIC — JSON create (kept open for frontend integration)
	g.POST("/announcements", createHandler)

	// PROTECTED — admin operations
	admin := g.Group("/announcements/admin", middleware.RequireAdmin)

	// all announcements including inactive
	admin.GET("", func(c echo.Context) error {
		list, err := as.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	admin.POST("", createHandler)

	admin.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		req := new(services.AnnouncementInput)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		a, err := as.Update(c.Request().Context(), id, *req)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, a)
	})

	admin.PUT("/:id/toggle-active", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		a, err := as.ToggleActive(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, a)
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := as.Delete(c.Request().Context(), id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})
}
