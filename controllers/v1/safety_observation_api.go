package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	safetyobservationhandler "site-qhse-backend/lib/safety-observation"
	"site-qhse-backend/middleware"
	apimodels "site-qhse-backend/models/api"
	safetyapimodels "site-qhse-backend/models/api/safety"
)

type safetyObservationApiController struct {
	controllers.BaseAPIController
}

func InitSafetyObservationApiRouters(router fiber.Router) {
	controller := safetyObservationApiController{}
	router.Route("safety-observation", func(observationRoute fiber.Router) {
		observationRoute.Get("", controller.list)
		observationRoute.Post("", controller.create)
		observationRoute.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("corrective-action", controller.submitCorrectiveAction)
			idRoute.Put("verify", controller.verifyCorrectiveAction)
			idRoute.Put("reject", controller.rejectCorrectiveAction)
		})
	})
}

// @Summary Создание наблюдения
// @Tags Наблюдения
// @Description Регистрация наблюдения по безопасности
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param	body body	 safetyapimodels.ObservationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/safety-observation [post]
func (c *safetyObservationApiController) create(ctx *fiber.Ctx) error {
	var payload safetyapimodels.ObservationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := safetyobservationhandler.Instance.Create(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания наблюдения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Отчёт об устранении
// @Tags Наблюдения
// @Description Отчёт назначенного исполнителя о корректирующих действиях
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 safetyapimodels.CorrectiveActionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/safety-observation/{id}/corrective-action [put]
func (c *safetyObservationApiController) submitCorrectiveAction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload safetyapimodels.CorrectiveActionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = safetyobservationhandler.Instance.SubmitCorrectiveAction(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки корректирующих действий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Подтверждение устранения
// @Tags Наблюдения
// @Description Подтверждение корректирующих действий автором наблюдения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/safety-observation/{id}/verify [put]
func (c *safetyObservationApiController) verifyCorrectiveAction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = safetyobservationhandler.Instance.VerifyCorrectiveAction(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подтверждения устранения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Возврат на доработку
// @Tags Наблюдения
// @Description Возврат корректирующих действий на доработку автором наблюдения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/safety-observation/{id}/reject [put]
func (c *safetyObservationApiController) rejectCorrectiveAction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = safetyobservationhandler.Instance.RejectCorrectiveAction(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка возврата на доработку")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение наблюдения
// @Tags Наблюдения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=safetyapimodels.ObservationView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/safety-observation/{id} [get]
func (c *safetyObservationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := safetyobservationhandler.Instance.Get(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения наблюдения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список наблюдений
// @Tags Наблюдения
// @Description Список по ключу фильтра (open, closed, corrective-action-required, verification-required)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   filter      		query   string  	false   "filter key"
// @Success 200 {object} apimodels.Response{data=[]safetyapimodels.ObservationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/safety-observation [get]
func (c *safetyObservationApiController) list(ctx *fiber.Ctx) error {
	list, err := safetyobservationhandler.Instance.List(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx), ctx.Query("filter"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения наблюдений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Удаление наблюдения
// @Tags Наблюдения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/safety-observation/{id} [delete]
func (c *safetyObservationApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = safetyobservationhandler.Instance.Delete(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления наблюдения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
