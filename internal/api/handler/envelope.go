package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/order-portal/internal/core/domain"
)

func ok[T any](c echo.Context, data T) error {
	return c.JSON(http.StatusOK, domain.Envelope[T]{Success: true, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, domain.Envelope[any]{Success: false, Message: message})
}
