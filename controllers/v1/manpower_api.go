package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	manpowerhandler "site-qhse-backend/lib/manpower"
	"site-qhse-backend/middleware"
	apimodels "site-qhse-backend/models/api"
	manpowerapimodels "site-qhse-backend/models/api/manpower"
)

type manpowerApiController struct {
	controllers.BaseAPIController
}

func InitManpowerApiRouters(router fiber.Router) {
	controller := manpowerApiController{}
	router.Route("manpower", func(manpowerRoute fiber.Router) {
		manpowerRoute.Get("", controller.list)
		manpowerRoute.Post("", controller.create)
		manpowerRoute.Get("export", controller.export)
		manpowerRoute.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("verify", controller.verify)
		})
	})
}

// parseDateQuery - значение query-параметра в формате 2006-01-02
func parseDateQuery(ctx *fiber.Ctx, name string) *time.Time {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}

// @Summary Подача отчёта
// @Tags Персонал
// @Description Подача суточного отчёта по персоналу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param	body body	 manpowerapimodels.ManpowerData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/manpower [post]
func (c *manpowerApiController) create(ctx *fiber.Ctx) error {
	var payload manpowerapimodels.ManpowerData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := manpowerhandler.Instance.Create(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Проверка отчёта
// @Tags Персонал
// @Description Установка статуса проверки отчёта представителем EPC
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 manpowerapimodels.VerifyData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/manpower/{id}/verify [put]
func (c *manpowerApiController) verify(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload manpowerapimodels.VerifyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = manpowerhandler.Instance.Verify(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Обновление отчёта
// @Tags Персонал
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 manpowerapimodels.ManpowerData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/manpower/{id} [put]
func (c *manpowerApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload manpowerapimodels.ManpowerData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = manpowerhandler.Instance.Update(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение отчёта
// @Tags Персонал
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=manpowerapimodels.ManpowerView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/manpower/{id} [get]
func (c *manpowerApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := manpowerhandler.Instance.Get(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список отчётов
// @Tags Персонал
// @Description Список отчётов за период
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   from        		query   string  	false   "date from (2006-01-02)"
// @Param   to          		query   string  	false   "date to (2006-01-02)"
// @Success 200 {object} apimodels.Response{data=[]manpowerapimodels.ManpowerView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/manpower [get]
func (c *manpowerApiController) list(ctx *fiber.Ctx) error {
	list, err := manpowerhandler.Instance.List(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx),
		parseDateQuery(ctx, "from"), parseDateQuery(ctx, "to"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отчётов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Реестр отчётов
// @Tags Персонал
// @Description Выгрузка реестра отчётов за период в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   from        		query   string  	false   "date from (2006-01-02)"
// @Param   to          		query   string  	false   "date to (2006-01-02)"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/manpower/export [get]
func (c *manpowerApiController) export(ctx *fiber.Ctx) error {
	file, err := manpowerhandler.Instance.ExportXLSX(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx),
		parseDateQuery(ctx, "from"), parseDateQuery(ctx, "to"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки реестра")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=manpower-register.xlsx")
	return ctx.Status(fiber.StatusOK).Send(file)
}

// @Summary Удаление отчёта
// @Tags Персонал
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/manpower/{id} [delete]
func (c *manpowerApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = manpowerhandler.Instance.Delete(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
