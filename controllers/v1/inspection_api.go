package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	inspectionhandler "site-qhse-backend/lib/inspection"
	"site-qhse-backend/middleware"
	apimodels "site-qhse-backend/models/api"
	inspectionapimodels "site-qhse-backend/models/api/inspection"
)

type inspectionApiController struct {
	controllers.BaseAPIController
}

func InitInspectionApiRouters(router fiber.Router) {
	controller := inspectionApiController{}
	router.Route("inspection", func(inspectionRoute fiber.Router) {
		inspectionRoute.Get("categories", controller.categories)
		inspectionRoute.Get("", controller.list)
		inspectionRoute.Post("", controller.create)
		inspectionRoute.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("approve", controller.approve)
			idRoute.Get("report", controller.report)
		})
	})
}

// @Summary Категории инспекций
// @Tags Инспекции
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]inspectionapimodels.CategoryView}
// @router /api/v1/worksite/{work_site_id}/inspection/categories [get]
func (c *inspectionApiController) categories(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(inspectionhandler.Instance.ListCategories()))
}

// @Summary Создание чек-листа
// @Tags Инспекции
// @Description Создание инспекционного чек-листа с назначением свидетелей
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param	body body	 inspectionapimodels.InspectionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/inspection [post]
func (c *inspectionApiController) create(ctx *fiber.Ctx) error {
	var payload inspectionapimodels.InspectionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := inspectionhandler.Instance.Create(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания чек-листа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Подтверждение свидетеля
// @Tags Инспекции
// @Description Фиксация подтверждения свидетеля по своему слоту
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Param	body body	 inspectionapimodels.WitnessApprovalData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/inspection/{id}/approve [put]
func (c *inspectionApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload inspectionapimodels.WitnessApprovalData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = inspectionhandler.Instance.RecordWitnessApproval(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подтверждения чек-листа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение чек-листа
// @Tags Инспекции
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=inspectionapimodels.InspectionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/inspection/{id} [get]
func (c *inspectionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := inspectionhandler.Instance.Get(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения чек-листа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список чек-листов
// @Tags Инспекции
// @Description Список по ключу фильтра (action-required, initiated, in-progress, по умолчанию согласованные)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   filter      		query   string  	false   "filter key"
// @Param   category    		query   string  	false   "category id"
// @Success 200 {object} apimodels.Response{data=[]inspectionapimodels.InspectionView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/inspection [get]
func (c *inspectionApiController) list(ctx *fiber.Ctx) error {
	list, err := inspectionhandler.Instance.List(middleware.GetWorkSiteID(ctx), middleware.GetActor(ctx),
		ctx.Query("filter"), ctx.Query("category"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения чек-листов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Удаление чек-листа
// @Tags Инспекции
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/inspection/{id} [delete]
func (c *inspectionApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = inspectionhandler.Instance.Delete(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления чек-листа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отчёт по инспекции
// @Tags Инспекции
// @Description Печатная форма согласованного чек-листа в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   id          		path    string  	true    "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/inspection/{id}/report [get]
func (c *inspectionApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	pdfFile, err := inspectionhandler.Instance.ExportPDF(middleware.GetWorkSiteID(ctx), id, middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчёта")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=inspection-report.pdf")
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}
