package handlers

import (
	"errors"

	"github.com/devjyoon/nearmarket/internal/geo"
	"github.com/devjyoon/nearmarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is the custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}

// searchError maps service errors to a status code.
// 잘못된 파라미터는 400, 나머지는 500. "결과 없음"은 에러가 아니라 빈 페이지다.
func searchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidQuery) || errors.Is(err, geo.ErrInvalidCoordinate) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "search failed", Details: err.Error()})
}
