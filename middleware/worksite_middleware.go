package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "site-qhse-backend/lib/utils/auth-utils"
	"site-qhse-backend/models"
	apimodels "site-qhse-backend/models/api"
)

// GetWorkSiteID - идентификатор площадки из пути запроса
func GetWorkSiteID(ctx *fiber.Ctx) string {
	return ctx.Params("work_site_id")
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func IsGlobalAdmin(ctx *fiber.Ctx) bool {
	claims := authutils.GetClaims(ctx)
	if admin, exist := claims["admin"]; exist {
		if value, ok := admin.(bool); ok {
			return value
		}
	}
	return false
}

// GetActor - действующий пользователь запроса по данным токена
func GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		ID:          GetUserID(ctx),
		GlobalAdmin: IsGlobalAdmin(ctx),
	}
}

// EPCAdminRequired - доступ только по флагу глобального администратора
func EPCAdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !IsGlobalAdmin(ctx) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

// WorkSiteRequired - запрос должен содержать площадку в пути
func WorkSiteRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetWorkSiteID(ctx) == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указана рабочая площадка"))
		}
		return ctx.Next()
	}
}
