// Package response implements the JSON envelope every handler writes:
// {success, message, data} paired with the matching HTTP status code.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// OK writes a 200 with data.
func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 with data.
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// BadRequest writes a 400.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// Unauthorized writes a 401.
func Unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: message})
}

// Forbidden writes a 403.
func Forbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, Envelope{Success: false, Message: message})
}

// NotFound writes a 404.
func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, Envelope{Success: false, Message: message})
}

// ServerError writes a 500.
func ServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: message})
}
