package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	ptwhandler "site-qhse-backend/lib/ptw"
	"site-qhse-backend/middleware"
	apimodels "site-qhse-backend/models/api"
	ptwapimodels "site-qhse-backend/models/api/ptw"
)

type ptwApiController struct {
	controllers.BaseAPIController
}

func InitPTWApiRouters(router fiber.Router) {
	controller := ptwApiController{}
	router.Route("ptw", func(ptwRoute fiber.Router) {
		ptwRoute.Get("", controller.list)
		ptwRoute.Post("", controller.submit)
		ptwRoute.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("verify", controller.verify)              // проверка EPC
			idRoute.Put("approve", controller.approve)            // утверждение заказчиком
			idRoute.Put("reject", controller.reject)              // отклонение заказчиком
			idRoute.Put("request-closure", controller.requestClosure)
			idRoute.Put("close", controller.close)
		})
	})
}

// @Summary Подача наряда
// @Tags Наряды-допуски
// @Description Подача наряда-допуска субподрядчиком
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param	body body	 ptwapimodels.PTWData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw [post]
func (c *ptwApiController) submit(ctx *fiber.Ctx) error {
	var payload ptwapimodels.PTWData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := ptwhandler.Instance.Submit(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Проверка наряда
// @Tags Наряды-допуски
// @Description Проверка наряда представителем EPC
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 ptwapimodels.SignatureData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw/{id}/verify [put]
func (c *ptwApiController) verify(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload ptwapimodels.SignatureData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = ptwhandler.Instance.Verify(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Утверждение наряда
// @Tags Наряды-допуски
// @Description Утверждение наряда заказчиком
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 ptwapimodels.SignatureData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw/{id}/approve [put]
func (c *ptwApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload ptwapimodels.SignatureData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = ptwhandler.Instance.ClientApprove(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка утверждения наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонение наряда
// @Tags Наряды-допуски
// @Description Отклонение наряда заказчиком с указанием причины
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 ptwapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw/{id}/reject [put]
func (c *ptwApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload ptwapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = ptwhandler.Instance.ClientReject(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Запрос закрытия
// @Tags Наряды-допуски
// @Description Запрос закрытия открытого наряда представителем EPC
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw/{id}/request-closure [put]
func (c *ptwApiController) requestClosure(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = ptwhandler.Instance.RequestClosure(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запроса закрытия наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Закрытие наряда
// @Tags Наряды-допуски
// @Description Закрытие наряда заказчиком по запросу EPC
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw/{id}/close [put]
func (c *ptwApiController) close(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = ptwhandler.Instance.Close(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка закрытия наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение наряда
// @Tags Наряды-допуски
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=ptwapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw/{id} [get]
func (c *ptwApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := ptwhandler.Instance.Get(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список нарядов
// @Tags Наряды-допуски
// @Description Список по ключу фильтра (open, closed, submitted, pending-approval, rejected, expired)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   filter      		query   string  	false   "filter key"
// @Success 200 {object} apimodels.Response{data=[]ptwapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw [get]
func (c *ptwApiController) list(ctx *fiber.Ctx) error {
	list, err := ptwhandler.Instance.List(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx), ctx.Query("filter"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения нарядов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Удаление наряда
// @Tags Наряды-допуски
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/ptw/{id} [delete]
func (c *ptwApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = ptwhandler.Instance.Delete(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления наряда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
