package apiv1

import (
	"ats-backend/controllers"
	"ats-backend/lib/analytics"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Get("reports-all", controller.all)
	})
}

// @Summary Dashboard report
// @Tags Reports
// @Description Aggregate numbers for the company dashboard
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportsAllView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/reports/reports-all [get]
func (c *reportApiController) all(ctx *fiber.Ctx) error {
	companyID := middleware.GetUserCompany(ctx)
	resp, err := analytics.Instance.ReportsAll(companyID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build the report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
