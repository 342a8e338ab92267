package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"site-qhse-backend/middleware"
)

// InitRouters - маршруты v1. Операции внутри площадки живут под
// /api/v1/worksite/:work_site_id и требуют авторизации.
func InitRouters(app *fiber.App) {
	app.Route("/api/v1", func(router fiber.Router) {
		InitAuthApiRouters(router)

		router.Route("", func(authRouter fiber.Router) {
			authRouter.Use(middleware.AuthorizationRequired())
			InitWorkSiteApiRouters(authRouter)
			authRouter.Route("worksite/:work_site_id", func(siteRouter fiber.Router) {
				siteRouter.Use(middleware.WorkSiteRequired())
				InitRolesApiRouters(siteRouter)
				InitInspectionApiRouters(siteRouter)
				InitPTWApiRouters(siteRouter)
				InitSafetyObservationApiRouters(siteRouter)
				InitManpowerApiRouters(siteRouter)
				InitTbtApiRouters(siteRouter)
				InitWorkerApiRouters(siteRouter)
				InitFilesApiRouters(siteRouter)
			})
		})
	})
}
