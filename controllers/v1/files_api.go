package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/controllers"
	filestorage "site-qhse-backend/lib/file-storage"
	"site-qhse-backend/lib/permissions"
	"site-qhse-backend/middleware"
	apimodels "site-qhse-backend/models/api"
)

type filesApiController struct {
	controllers.BaseAPIController
}

func InitFilesApiRouters(router fiber.Router) {
	controller := filesApiController{}
	router.Route("files", func(filesRoute fiber.Router) {
		filesRoute.Post("signature", controller.uploadSignature)
		filesRoute.Post("image", controller.uploadImage)
		filesRoute.Post("doc", controller.uploadDoc)
		filesRoute.Get("*", controller.getFile)
	})
}

func (c *filesApiController) readUpload(ctx *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, fileHeader.Filename, nil
}

// @Summary Загрузка подписи
// @Tags Файлы
// @Description Загрузка изображения подписи (multipart, поле file)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   file        		formData	file	true    "file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/files/signature [post]
func (c *filesApiController) uploadSignature(ctx *fiber.Ctx) error {
	workSiteID := middleware.GetWorkSiteID(ctx)
	if err := permissions.Instance.RequireConfigured(workSiteID, middleware.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	data, _, err := c.readUpload(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileID, err := filestorage.Instance.UploadSignature(ctx.Context(), workSiteID, data)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Загрузка фотографии
// @Tags Файлы
// @Description Загрузка фотографии наблюдения или профиля (multipart, поле file)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   file        		formData	file	true    "file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/files/image [post]
func (c *filesApiController) uploadImage(ctx *fiber.Ctx) error {
	workSiteID := middleware.GetWorkSiteID(ctx)
	if err := permissions.Instance.RequireConfigured(workSiteID, middleware.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	data, _, err := c.readUpload(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	contentType := ctx.Get(fiber.HeaderContentType)
	fileID, err := filestorage.Instance.UploadImage(ctx.Context(), workSiteID, data, contentType)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Загрузка документа
// @Tags Файлы
// @Description Загрузка документа рабочего (multipart, поле file)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Param   file        		formData	file	true    "file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/files/doc [post]
func (c *filesApiController) uploadDoc(ctx *fiber.Ctx) error {
	workSiteID := middleware.GetWorkSiteID(ctx)
	if err := permissions.Instance.RequireConfigured(workSiteID, middleware.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	data, fileName, err := c.readUpload(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileID, err := filestorage.Instance.UploadDoc(ctx.Context(), workSiteID, data, fileName)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Получение файла
// @Tags Файлы
// @Description Получение файла по идентификатору, выданному при загрузке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   work_site_id		path    string  	true    "work site ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worksite/{work_site_id}/files/{file_id} [get]
func (c *filesApiController) getFile(ctx *fiber.Ctx) error {
	workSiteID := middleware.GetWorkSiteID(ctx)
	if err := permissions.Instance.RequireConfigured(workSiteID, middleware.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения файла")
	}
	fileID := ctx.Params("*")
	if fileID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор файла"))
	}
	data, err := filestorage.Instance.GetFile(ctx.Context(), workSiteID, fileID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения файла")
	}
	return ctx.Status(fiber.StatusOK).Send(data)
}
