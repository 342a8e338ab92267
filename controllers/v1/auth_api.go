package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	authhandler "site-qhse-backend/lib/auth"
	apimodels "site-qhse-backend/models/api"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(router fiber.Router) {
	controller := authApiController{}
	router.Route("auth", func(authRoute fiber.Router) {
		authRoute.Post("login", controller.login)
	})
}

// @Summary Вход
// @Tags Авторизация
// @Description Вход по почте и паролю
// @Param	body body	 authhandler.LoginData	true	"request body"
// @Success 200 {object} apimodels.Response{data=authhandler.TokenView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authhandler.LoginData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := authhandler.Instance.Login(payload)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
