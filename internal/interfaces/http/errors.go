package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/domain"
)

// writeError traduce errores de dominio a HTTP. validationCode es el code para ErrInvalidInput
// (VALIDATION o INVALID_IMAGE).
func writeError(c *fiber.Ctx, err error, validationCode string) error {
	c.Locals(localError, err)

	var rse *domain.RecipeServiceError
	switch {
	case errors.Is(err, domain.ErrNoIngredients):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_INGREDIENTS", Message: domain.ErrNoIngredients.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: validationCode, Message: detail(err, domain.ErrInvalidInput)})
	case errors.As(err, &rse):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "RECIPE_API", Message: "Recipe API error: " + rse.Message})
	case errors.Is(err, domain.ErrDetection):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "DETECTION", Message: "error del detector de alimentos"})
	case errors.Is(err, domain.ErrStorage):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error de almacenamiento"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// detail quita el prefijo del sentinel: "entrada inválida: X" -> "X".
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
