package apiv1

import (
	"ats-backend/controllers"
	companyhandler "ats-backend/lib/company"
	apimodels "ats-backend/models/api"
	companyapimodels "ats-backend/models/api/company"

	"github.com/gofiber/fiber/v2"
)

type adminPanelApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminPanelApiController{}
	app.Route("companies", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Put("set_active", controller.setActive)
		})
	})
}

// @Summary Create a company
// @Tags Admin panel
// @Description Create a company with its first admin user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 companyapimodels.CreateCompanyRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/companies [post]
func (c *adminPanelApiController) create(ctx *fiber.Ctx) error {
	var payload companyapimodels.CreateCompanyRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := companyhandler.Instance.Create(payload.CompanyData, payload.AdminEmail)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create the company")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update a company
// @Tags Admin panel
// @Description Update company profile fields
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 companyapimodels.CompanyData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/companies/{id} [put]
func (c *adminPanelApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload companyapimodels.CompanyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = companyhandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update the company")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Activate or deactivate a company
// @Tags Admin panel
// @Description A deactivated company's users cannot log in
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 companyapimodels.SetActiveRequest	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/companies/{id}/set_active [put]
func (c *adminPanelApiController) setActive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload companyapimodels.SetActiveRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = companyhandler.Instance.SetActive(id, payload.IsActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to change the company status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get a company
// @Tags Admin panel
// @Description Get a company by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=companyapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/companies/{id} [get]
func (c *adminPanelApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := companyhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the company")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List companies
// @Tags Admin panel
// @Description List all companies
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]companyapimodels.CompanyView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin_panel/companies/list [get]
func (c *adminPanelApiController) list(ctx *fiber.Ctx) error {
	resp, err := companyhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load the company list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
