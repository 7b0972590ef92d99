package main

import (
	"net/http"

	"github.com/Visithrand/infant-jesus-dvk/internal/services"

	"github.com/labstack/echo/v4"
)

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func registerEmailRoutes(g *echo.Group, em *services.EmailService) {

	// health check
	g.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "Server is running. Use POST /api/send-query to send data.")
	})

	// contact form relay
	g.POST("/send-query", func(c echo.Context) error {
		req := new(services.QueryRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
		}
		if err := em.SendQuery(c.Request().Context(), *req); err != nil {
			c.Logger().Errorf("send-query failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Email failed to send"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Query sent successfully"})
	})

	// explicit relay
	g.POST("/email/send", func(c echo.Context) error {
		req := new(sendEmailRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
		}
		if req.To == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "'to' is required"})
		}
		if err := em.SendEmail(c.Request().Context(), req.To, req.Subject, req.Body); err != nil {
			c.Logger().Errorf("email send failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Email failed to send"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Email sent successfully"})
	})
}
