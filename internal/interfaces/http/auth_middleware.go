package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dvalencia/bookstore-api/internal/application/dto"
	"github.com/dvalencia/bookstore-api/pkg/jwt"
)

// Local key para el vendedor autenticado en Fiber.
const LocalSellerID = "seller_id"

// AuthMiddleware valida el Bearer Token JWT y extrae el SellerID a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		sellerID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSellerID, sellerID)
		return c.Next()
	}
}

// GetSellerID devuelve el SellerID del contexto (después del middleware de auth).
func GetSellerID(c *fiber.Ctx) string {
	v := c.Locals(LocalSellerID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
