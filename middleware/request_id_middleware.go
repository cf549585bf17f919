package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID assigns a request id when the caller did not provide one,
// so every log line of the request can be correlated.
func RequestID() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Get(fiber.HeaderXRequestID) == "" {
			ctx.Request().Header.Set(fiber.HeaderXRequestID, uuid.New().String())
		}
		return ctx.Next()
	}
}
