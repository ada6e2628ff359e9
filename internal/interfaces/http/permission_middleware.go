package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invorya-access-api/internal/application/dto"
	"github.com/jhoicas/Invorya-access-api/internal/domain"
	"github.com/jhoicas/Invorya-access-api/internal/domain/permission"
)

// grantsProvider entrega los permisos del usuario. Lo implementa *usecase.AccessUseCase.
type grantsProvider interface {
	Grants(ctx context.Context, userID string) (permission.Grants, error)
}

// RequirePermission exige que el usuario del token satisfaga resource:action
// con las mismas reglas que filtran el menú. Usar después de AuthMiddleware.
func RequirePermission(resource, action string, grants grantsProvider) fiber.Handler {
	req := permission.Requirement{Resource: resource, Action: action}
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id no encontrado en el token"})
		}
		g, err := grants.Grants(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
			}
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario inactivo"})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERMISSION_CHECK_FAILED", Message: "no se pudieron cargar los permisos"})
		}
		if !permission.HasPermission(req, g) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requiere el permiso " + resource + ":" + action,
			})
		}
		return c.Next()
	}
}
