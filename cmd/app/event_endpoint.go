package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/middleware"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"
	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
)

// formImage opens the named multipart file if one was attached. A missing
// file is not an error; the caller gets a nil reader.
func formImage(c echo.Context, field string) (string, io.ReadCloser, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, f, nil
}

// parseEventTime accepts RFC3339 timestamps as well as ISO local
// date-times without an offset ("2026-09-15T10:00:00"), which is what the
// site's forms submit.
func parseEventTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", v, time.Local)
}

func registerEventRoutes(g *echo.Group, es *services.EventService) {

	// PUBLIC — list events, latest first
	g.GET("/events", func(c echo.Context) error {
		list, err := es.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// PUBLIC — get event
	g.GET("/events/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		e, err := es.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusOK, e)
	})

	createHandler := func(c echo.Context) error {
		req := new(services.EventInput)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		e, err := es.Create(c.Request().Context(), *req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, e)
	}

	// PUBLIC — JSON create (kept open for frontend integration)
	g.POST("/events", createHandler)

	// PUBLIC — multipart create with optional image
	g.POST("/events/upload", func(c echo.Context) error {
		in := services.EventInput{Title: c.FormValue("title")}
		if v := c.FormValue("description"); v != "" {
			in.Description = &v
		}
		if v := c.FormValue("eventDateTime"); v != "" {
			t, err := parseEventTime(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid eventDateTime"})
			}
			in.EventDateTime = &t
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

		e, err := es.CreateWithImage(c.Request().Context(), in, filename, content)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, e)
	})

	// PROTECTED — admin write operations
	admin := g.Group("/events/admin", middleware.RequireAdmin)

	admin.POST("", createHandler)

	admin.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		req := new(services.EventInput)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		e, err := es.Update(c.Request().Context(), id, *req)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, e)
	})

	// DELETE is idempotent: deleting a missing event still succeeds
	admin.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := es.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})
}
