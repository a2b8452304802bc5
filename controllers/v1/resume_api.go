package apiv1

import (
	"io"

	"ats-backend/controllers"
	resumehandler "ats-backend/lib/resume"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
	resumeapimodels "ats-backend/models/api/resume"

	"github.com/gofiber/fiber/v2"
)

type resumeApiController struct {
	controllers.BaseAPIController
}

func InitResumeApiRouters(app *fiber.App) {
	controller := resumeApiController{}
	app.Route("resumes", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Use(middleware.RecruiterRequired())
		router.Post("bulk-import", controller.bulkImport)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Bulk resume import
// @Tags Resumes
// @Description Upload and parse a batch of resume files
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.BulkImportResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/resumes/bulk-import [post]
func (c *resumeApiController) bulkImport(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("multipart form is required"))
	}
	files := make([]resumehandler.UploadedFile, 0, len(form.File["files"]))
	for _, fileHeader := range form.File["files"] {
		src, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read an uploaded file"))
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read an uploaded file"))
		}
		files = append(files, resumehandler.UploadedFile{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := resumehandler.Instance.BulkImport(ctx.UserContext(), companyID, userID, files)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to import resumes")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List imported resumes
// @Tags Resumes
// @Description List imported resumes not yet promoted to candidates
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 resumeapimodels.ResumeDataFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]resumeapimodels.ResumeDataView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/resumes/list [post]
func (c *resumeApiController) list(ctx *fiber.Ctx) error {
	var payload resumeapimodels.ResumeDataFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	list, rowCount, err := resumehandler.Instance.List(companyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the resume list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Delete an imported resume
// @Tags Resumes
// @Description Delete an imported resume
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/resumes/{id} [delete]
func (c *resumeApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = resumehandler.Instance.Delete(companyID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete the resume")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
