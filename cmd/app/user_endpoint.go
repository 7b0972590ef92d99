package main

import (
	"net/http"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"
	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
)

// registerUserRoutes wires public user self-registration. Accounts created
// here always get the USER role.
func registerUserRoutes(g *echo.Group, userSvc *services.UserService) {
	g.POST("/users/register", func(c echo.Context) error {
		req := new(services.UserRegistration)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
		}
		id, err := userSvc.Register(c.Request().Context(), *req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"message":  "User registered successfully",
			"userId":   id,
			"username": req.Username,
			"role":     model.RoleUser,
		})
	})
}
