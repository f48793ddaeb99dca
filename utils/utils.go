package utils

import (
	"fmt"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
)

// GenerateRateLimitKey creates a unique key for rate limiting submissions
func GenerateRateLimitKey(ip, path string) string {
	return fmt.Sprintf("rl:%s:%s", ip, path)
}

// IsValidEmail checks the syntactic shape of an address.
func IsValidEmail(email string) bool {
	return checkmail.ValidateFormat(email) == nil
}

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// SuccessResponse creates a standardized success response
func SuccessResponse(message string) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
	}
}
