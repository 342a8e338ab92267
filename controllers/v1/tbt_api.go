package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	tbthandler "site-qhse-backend/lib/tbt"
	"site-qhse-backend/middleware"
	apimodels "site-qhse-backend/models/api"
	tbtapimodels "site-qhse-backend/models/api/tbt"
)

type tbtApiController struct {
	controllers.BaseAPIController
}

func InitTbtApiRouters(router fiber.Router) {
	controller := tbtApiController{}
	router.Route("tbt", func(tbtRoute fiber.Router) {
		tbtRoute.Get("", controller.list)
		tbtRoute.Post("", controller.create)
		tbtRoute.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Регистрация инструктажа
// @Tags Инструктажи
// @Description Регистрация проведённого инструктажа (toolbox talk)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param	body body	 tbtapimodels.ToolBoxTalkData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/tbt [post]
func (c *tbtApiController) create(ctx *fiber.Ctx) error {
	var payload tbtapimodels.ToolBoxTalkData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := tbthandler.Instance.Create(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка регистрации инструктажа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление инструктажа
// @Tags Инструктажи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 tbtapimodels.ToolBoxTalkData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/tbt/{id} [put]
func (c *tbtApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tbtapimodels.ToolBoxTalkData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = tbthandler.Instance.Update(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления инструктажа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение инструктажа
// @Tags Инструктажи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=tbtapimodels.ToolBoxTalkView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/tbt/{id} [get]
func (c *tbtApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := tbthandler.Instance.Get(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения инструктажа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список инструктажей
// @Tags Инструктажи
// @Description Список инструктажей за период
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   from        		query   string  	false   "date from (2006-01-02)"
// @Param   to          		query   string  	false   "date to (2006-01-02)"
// @Success 200 {object} apimodels.Response{data=[]tbtapimodels.ToolBoxTalkView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/tbt [get]
func (c *tbtApiController) list(ctx *fiber.Ctx) error {
	list, err := tbthandler.Instance.List(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx),
		parseDateQuery(ctx, "from"), parseDateQuery(ctx, "to"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения инструктажей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Удаление инструктажа
// @Tags Инструктажи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/tbt/{id} [delete]
func (c *tbtApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = tbthandler.Instance.Delete(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления инструктажа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
