package apiv1

import (
	"ats-backend/controllers"
	aihandler "ats-backend/lib/ai"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
	aiapimodels "ats-backend/models/api/ai"

	"github.com/gofiber/fiber/v2"
)

type aiApiController struct {
	controllers.BaseAPIController
}

func InitAiApiRouters(app *fiber.App) {
	controller := aiApiController{}
	app.Route("ai-analysis", func(router fiber.Router) {
		router.Use(middleware.RecruiterRequired())
		router.Post("analyze", controller.analyze)
		router.Post("batch-analyze", controller.batchAnalyze)
		router.Delete("", controller.deleteResult)
		router.Post("generate-job-description", controller.generateJobDescription)
	})
}

// @Summary Analyze a candidate/job match
// @Tags AI analysis
// @Description Analyze how well a candidate matches a job; results are cached
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 aiapimodels.AnalyzeRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=aiapimodels.AnalyzeResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/ai-analysis/analyze [post]
func (c *aiApiController) analyze(ctx *fiber.Ctx) error {
	var payload aiapimodels.AnalyzeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	resp, err := aihandler.Instance.Analyze(ctx.UserContext(), companyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "analysis failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Analyze several candidates against a job
// @Tags AI analysis
// @Description Analyze several candidates against a job; failures are reported per candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 aiapimodels.BatchAnalyzeRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]aiapimodels.BatchItem}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/ai-analysis/batch-analyze [post]
func (c *aiApiController) batchAnalyze(ctx *fiber.Ctx) error {
	var payload aiapimodels.BatchAnalyzeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	resp, err := aihandler.Instance.BatchAnalyze(ctx.UserContext(), companyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "batch analysis failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Evict a cached analysis result
// @Tags AI analysis
// @Description Evict the cached result so the next analyze call recomputes it
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 aiapimodels.AnalyzeRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/ai-analysis [delete]
func (c *aiApiController) deleteResult(ctx *fiber.Ctx) error {
	var payload aiapimodels.AnalyzeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	if err := aihandler.Instance.DeleteResult(companyID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to evict the result")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Generate a job description
// @Tags AI analysis
// @Description Generate a job description from free-form inputs
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 aiapimodels.GenerateJobDescRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=aiapimodels.GenerateJobDescResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/ai-analysis/generate-job-description [post]
func (c *aiApiController) generateJobDescription(ctx *fiber.Ctx) error {
	var payload aiapimodels.GenerateJobDescRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	resp, err := aihandler.Instance.GenerateJobDescription(companyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "description generation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
