package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	worksiteroles "site-qhse-backend/lib/worksite/roles"
	"site-qhse-backend/middleware"
	"site-qhse-backend/models"
	apimodels "site-qhse-backend/models/api"
	worksiteapimodels "site-qhse-backend/models/api/worksite"
)

type rolesApiController struct {
	controllers.BaseAPIController
}

func InitRolesApiRouters(router fiber.Router) {
	controller := rolesApiController{}
	router.Route("roles", func(rolesRoute fiber.Router) {
		rolesRoute.Get("", controller.list)
		rolesRoute.Post("", middleware.EPCAdminRequired(), controller.assign)
		rolesRoute.Get("in-role/:role", controller.usersInRole)
		rolesRoute.Get("witness-candidates", controller.witnessCandidates)
		rolesRoute.Delete(":id", middleware.EPCAdminRequired(), controller.revoke)
	})
}

// @Summary Назначение роли
// @Tags Роли
// @Description Назначение роли пользователю на площадке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param	body body	 worksiteapimodels.RoleAssignData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/roles [post]
func (c *rolesApiController) assign(ctx *fiber.Ctx) error {
	var payload worksiteapimodels.RoleAssignData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := worksiteroles.Instance.Assign(middleware.GetWorkSiteID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения роли")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Роли площадки
// @Tags Роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Success 200 {object} apimodels.Response{data=[]worksiteapimodels.RoleView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/roles [get]
func (c *rolesApiController) list(ctx *fiber.Ctx) error {
	list, err := worksiteroles.Instance.List(middleware.GetWorkSiteID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения ролей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Пользователи в роли
// @Tags Роли
// @Description Пользователи площадки с указанной ролью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   role        		path    string  	true    "role"
// @Success 200 {object} apimodels.Response{data=[]worksiteapimodels.RoleView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/roles/in-role/{role} [get]
func (c *rolesApiController) usersInRole(ctx *fiber.Ctx) error {
	role := models.Role(ctx.Params("role"))
	if err := role.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := worksiteroles.Instance.UsersInRole(middleware.GetWorkSiteID(ctx), role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Кандидаты в свидетели
// @Tags Роли
// @Description Участники площадки без самого запрашивающего
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Success 200 {object} apimodels.Response{data=[]worksiteapimodels.RoleView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/roles/witness-candidates [get]
func (c *rolesApiController) witnessCandidates(ctx *fiber.Ctx) error {
	actor := middleware.GetActor(ctx)
	list, err := worksiteroles.Instance.WitnessCandidates(middleware.GetWorkSiteID(ctx), actor.ID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отзыв роли
// @Tags Роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/roles/{id} [delete]
func (c *rolesApiController) revoke(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = worksiteroles.Instance.Revoke(middleware.GetWorkSiteID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отзыва роли")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
