package apiv1

import (
	"io"

	"ats-backend/controllers"
	jobhandler "ats-backend/lib/job"
	resumehandler "ats-backend/lib/resume"
	apimodels "ats-backend/models/api"
	resumeapimodels "ats-backend/models/api/resume"

	"github.com/gofiber/fiber/v2"
)

type publicApiController struct {
	controllers.BaseAPIController
}

func InitPublicApiRouters(app *fiber.App) {
	controller := publicApiController{}
	app.Route("job-listings", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Route(":slug", func(slugRoute fiber.Router) {
			slugRoute.Get("", controller.getBySlug)
			slugRoute.Post("apply", controller.apply)
		})
	})
}

// @Summary Public list of active jobs
// @Tags Public job board
// @Description Public list of active jobs
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.PublicJobView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-listings [get]
func (c *publicApiController) list(ctx *fiber.Ctx) error {
	resp, err := jobhandler.Instance.PublicList()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the job board")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Public job page
// @Tags Public job board
// @Description Public job page by slug
// @Param   slug          		path    string	true	"job slug"
// @Success 200 {object} apimodels.Response{data=jobapimodels.PublicJobView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-listings/{slug} [get]
func (c *publicApiController) getBySlug(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")
	resp, err := jobhandler.Instance.PublicGetBySlug(slug)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the job page")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Apply to a job
// @Tags Public job board
// @Description Apply to a job; multipart form with an optional resume file
// @Param   slug          		path    string	true	"job slug"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ApplyResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job-listings/{slug}/apply [post]
func (c *publicApiController) apply(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")
	var payload resumeapimodels.ApplyRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var file *resumehandler.UploadedFile
	if fileHeader, err := ctx.FormFile("resume"); err == nil && fileHeader != nil {
		src, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read the resume file"))
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read the resume file"))
		}
		file = &resumehandler.UploadedFile{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	resp, err := resumehandler.Instance.PublicApply(ctx.UserContext(), slug, payload, file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit the application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
