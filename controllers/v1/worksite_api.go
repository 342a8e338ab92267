package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	worksitehandler "site-qhse-backend/lib/worksite"
	"site-qhse-backend/middleware"
	apimodels "site-qhse-backend/models/api"
	worksiteapimodels "site-qhse-backend/models/api/worksite"
)

type workSiteApiController struct {
	controllers.BaseAPIController
}

func InitWorkSiteApiRouters(router fiber.Router) {
	controller := workSiteApiController{}
	router.Route("worksite", func(siteRoute fiber.Router) {
		siteRoute.Get("", controller.list)
		siteRoute.Post("", middleware.EPCAdminRequired(), controller.create)
		siteRoute.Get(":work_site_id/info", controller.get)
		siteRoute.Put(":work_site_id/corrective-action-users", controller.setCorrectiveActionUsers)
		siteRoute.Get(":work_site_id/corrective-action-users", controller.listCorrectiveActionUsers)
		siteRoute.Get(":work_site_id/classifications", controller.listClassifications)
	})
}

// @Summary Создание площадки
// @Tags Площадка
// @Description Создание рабочей площадки, только для глобального администратора
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 worksiteapimodels.WorkSiteData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite [post]
func (c *workSiteApiController) create(ctx *fiber.Ctx) error {
	var payload worksiteapimodels.WorkSiteData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := worksitehandler.Instance.Create(ctx.Context(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания площадки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список площадок
// @Tags Площадка
// @Description Список рабочих площадок
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]worksiteapimodels.WorkSiteView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite [get]
func (c *workSiteApiController) list(ctx *fiber.Ctx) error {
	list, err := worksitehandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка площадок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Площадка
// @Tags Площадка
// @Description Данные площадки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Success 200 {object} apimodels.Response{data=worksiteapimodels.WorkSiteView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/info [get]
func (c *workSiteApiController) get(ctx *fiber.Ctx) error {
	view, err := worksitehandler.Instance.Get(middleware.GetWorkSiteID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения площадки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Исполнители корректирующих действий
// @Tags Площадка
// @Description Замена списка исполнителей корректирующих действий площадки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param	body body	 worksiteapimodels.CorrectiveActionUsersData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/corrective-action-users [put]
func (c *workSiteApiController) setCorrectiveActionUsers(ctx *fiber.Ctx) error {
	var payload worksiteapimodels.CorrectiveActionUsersData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := worksitehandler.Instance.SetCorrectiveActionUsers(middleware.GetWorkSiteID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления исполнителей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список исполнителей корректирующих действий
// @Tags Площадка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Success 200 {object} apimodels.Response{data=[]worksiteapimodels.RoleView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/corrective-action-users [get]
func (c *workSiteApiController) listCorrectiveActionUsers(ctx *fiber.Ctx) error {
	list, err := worksitehandler.Instance.ListCorrectiveActionUsers(middleware.GetWorkSiteID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения исполнителей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Классификации наблюдений
// @Tags Площадка
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]worksiteapimodels.ClassificationView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/classifications [get]
func (c *workSiteApiController) listClassifications(ctx *fiber.Ctx) error {
	list, err := worksitehandler.Instance.ListClassifications()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения классификаций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
