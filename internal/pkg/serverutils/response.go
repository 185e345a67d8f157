package serverutils

import "github.com/gofiber/fiber/v2"

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

type PaginatedResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
	Total   int64  `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

func SuccessResponse[T any](ctx *fiber.Ctx, statusCode int, message string, data T) error {
	return ctx.Status(statusCode).JSON(Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func PaginatedSuccessResponse[T any](ctx *fiber.Ctx, statusCode int, message string, data T, total int64, limit, offset int) error {
	return ctx.Status(statusCode).JSON(PaginatedResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func ErrorResponse(ctx *fiber.Ctx, statusCode int, message string) error {
	return ctx.Status(statusCode).JSON(Response[any]{
		Success: false,
		Message: message,
	})
}
