package apiv1

import (
	"ats-backend/controllers"
	interviewhandler "ats-backend/lib/interview"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
	interviewapimodels "ats-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
)

type interviewApiController struct {
	controllers.BaseAPIController
}

func InitInterviewApiRouters(app *fiber.App) {
	controller := interviewApiController{}
	app.Route("interviews", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Use(middleware.RecruiterRequired())
		router.Post("schedule", controller.schedule)
		router.Post("bulk-schedule", controller.bulkSchedule)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("feedback", controller.feedback)
			idRoute.Put("reschedule", controller.reschedule)
		})
	})
}

// @Summary Schedule an interview
// @Tags Interviews
// @Description Schedule an interview for one candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.ScheduleRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/interviews/schedule [post]
func (c *interviewApiController) schedule(ctx *fiber.Ctx) error {
	var payload interviewapimodels.ScheduleRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := interviewhandler.Instance.Schedule(companyID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to schedule the interview")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Schedule interviews for several candidates
// @Tags Interviews
// @Description Schedule the same slot for several candidates; failures are reported per candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.BulkScheduleRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.BulkScheduleItem}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/interviews/bulk-schedule [post]
func (c *interviewApiController) bulkSchedule(ctx *fiber.Ctx) error {
	var payload interviewapimodels.BulkScheduleRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := interviewhandler.Instance.BulkSchedule(companyID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to schedule interviews")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Get an interview
// @Tags Interviews
// @Description Get an interview by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/interviews/{id} [get]
func (c *interviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	resp, err := interviewhandler.Instance.Get(companyID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the interview")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List interviews
// @Tags Interviews
// @Description List interviews with filter and pagination
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.InterviewFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/interviews/list [post]
func (c *interviewApiController) list(ctx *fiber.Ctx) error {
	var payload interviewapimodels.InterviewFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	list, rowCount, err := interviewhandler.Instance.List(companyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the interview list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Record interview feedback
// @Tags Interviews
// @Description Record the interview outcome and feedback
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.FeedbackRequest	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/interviews/{id}/feedback [put]
func (c *interviewApiController) feedback(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload interviewapimodels.FeedbackRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = interviewhandler.Instance.SetFeedback(companyID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to save the feedback")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reschedule an interview
// @Tags Interviews
// @Description Move the interview to a new slot and set it back to scheduled
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.RescheduleRequest	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/interviews/{id}/reschedule [put]
func (c *interviewApiController) reschedule(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload interviewapimodels.RescheduleRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = interviewhandler.Instance.Reschedule(companyID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to reschedule the interview")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
