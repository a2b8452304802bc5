package apiv1

import (
	"ats-backend/controllers"
	companyusers "ats-backend/lib/company/users"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
	companyapimodels "ats-backend/models/api/company"

	"github.com/gofiber/fiber/v2"
)

type spaceUserApiController struct {
	controllers.BaseAPIController
}

func InitSpaceUserRouters(app *fiber.App) {
	controller := spaceUserApiController{}
	app.Route("users", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Use(middleware.CompanyAdminRequired())
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Create a user
// @Tags Company users
// @Description Create a user in the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 companyapimodels.UserData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/users [post]
func (c *spaceUserApiController) create(ctx *fiber.Ctx) error {
	var payload companyapimodels.UserData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	id, err := companyusers.Instance.Create(companyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create the user")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update a user
// @Tags Company users
// @Description Update a user in the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 companyapimodels.UserData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/users/{id} [put]
func (c *spaceUserApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload companyapimodels.UserData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = companyusers.Instance.Update(companyID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update the user")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get a user
// @Tags Company users
// @Description Get a user by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=companyapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/users/{id} [get]
func (c *spaceUserApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	resp, err := companyusers.Instance.Get(companyID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the user")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List company users
// @Tags Company users
// @Description List the users of the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]companyapimodels.UserView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/users/list [get]
func (c *spaceUserApiController) list(ctx *fiber.Ctx) error {
	companyID := middleware.GetUserCompany(ctx)
	resp, err := companyusers.Instance.List(companyID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the user list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete a user
// @Tags Company users
// @Description Delete a user from the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/users/{id} [delete]
func (c *spaceUserApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	err = companyusers.Instance.Delete(companyID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete the user")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
