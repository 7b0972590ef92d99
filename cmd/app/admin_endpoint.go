package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/middleware"
	"github.com/Visithrand/infant-jesus-dvk/internal/repository"
	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginHandler(adminSvc *services.AdminService, tokens *middleware.TokenService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "invalid request",
			})
		}

		admin, err := adminSvc.Authenticate(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid credentials",
				})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		token, err := tokens.Issue(admin.Username, admin.Role)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"message":  "Login successful",
			"token":    token,
			"username": admin.Username,
			"email":    admin.Email,
			"role":     admin.Role,
		})
	}
}

// validateHandler checks a bearer token presented in the Authorization
// header. It decodes first to learn the subject, then validates against it.
func validateHandler(tokens *middleware.TokenService) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := middleware.BearerToken(c)
		if tokenString == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"valid": false, "error": "missing token"})
		}

		claims, err := tokens.Decode(tokenString)
		if err != nil || !tokens.Validate(tokenString, claims.Subject) {
			return c.JSON(http.StatusBadRequest, echo.Map{"valid": false, "error": "Invalid token"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"valid":    true,
			"username": claims.Subject,
			"role":     claims.Role,
		})
	}
}

func bootstrapHandler(adminSvc *services.AdminService, creds bootstrapCredentials) echo.HandlerFunc {
	return func(c echo.Context) error {
		admin, err := adminSvc.BootstrapSuperAdmin(c.Request().Context(), creds.Username, creds.Email, creds.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Super admin bootstrapped successfully",
			"adminId": admin.AdminID,
			"email":   admin.Email,
			"role":    admin.Role,
		})
	}
}

func registerAdminHandler(adminSvc *services.AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(services.AdminRegistration)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
		}
		id, err := adminSvc.Register(c.Request().Context(), *req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Admin registered successfully",
			"adminId": id,
		})
	}
}

func createAdminHandler(adminSvc *services.AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(createAdminRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
		}
		id, err := adminSvc.Register(c.Request().Context(), services.AdminRegistration{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Admin created successfully",
			"adminId": id,
		})
	}
}

func listAdminsHandler(adminSvc *services.AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		admins, err := adminSvc.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to fetch admins"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "admins": admins})
	}
}

func deleteAdminHandler(adminSvc *services.AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
		}
		if err := adminSvc.Delete(c.Request().Context(), id); err != nil {
			switch {
			case errors.Is(err, services.ErrSuperAdminProtected):
				return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Cannot delete SUPER_ADMIN account"})
			case errors.Is(err, repository.ErrNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "admin not found"})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to delete admin"})
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Admin deleted successfully"})
	}
}

type bootstrapCredentials struct {
	Username string
	Email    string
	Password string
}

func registerAdminRoutes(g *echo.Group, adminSvc *services.AdminService, tokens *middleware.TokenService, creds bootstrapCredentials) {
	admin := g.Group("/admin")

	// public
	admin.GET("/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"success":   true,
			"message":   "Backend is working",
			"timestamp": time.Now().UnixMilli(),
		})
	})
	admin.POST("/login", loginHandler(adminSvc, tokens))
	admin.GET("/validate", validateHandler(tokens))
	admin.POST("/bootstrap-super-admin", bootstrapHandler(adminSvc, creds))

	// super-admin only
	super := admin.Group("", middleware.RequireSuperAdmin)
	super.POST("/register", registerAdminHandler(adminSvc))
	super.POST("/create", createAdminHandler(adminSvc))
	super.GET("/list", listAdminsHandler(adminSvc))
	super.DELETE("/:id", deleteAdminHandler(adminSvc))
}
