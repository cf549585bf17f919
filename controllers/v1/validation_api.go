package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	xlsexport "timesheet-backend/lib/export/xls"
	"timesheet-backend/lib/validation"
	"timesheet-backend/middleware"
	"timesheet-backend/models"
	apimodels "timesheet-backend/models/api"
	validationapimodels "timesheet-backend/models/api/validation"
)

type validationApiController struct {
	controllers.BaseAPIController
	handler   validation.Provider
	xlsExport xlsexport.Provider
}

func InitValidationApiRouters(app *fiber.App, handler validation.Provider, xlsExport xlsexport.Provider) {
	controller := validationApiController{
		handler:   handler,
		xlsExport: xlsExport,
	}
	app.Route("validation", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Post("sync", controller.sync)
		})
	})
}

// @Summary Submit a timesheet validation request
// @Tags Validation
// @Description Submit a timesheet validation request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 validationapimodels.ValidationCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/validation [post]
func (c *validationApiController) create(ctx *fiber.Ctx) error {
	var payload validationapimodels.ValidationCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetUserID(ctx)
	id, err := c.handler.Create(ctx.UserContext(), employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation request creation error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List own validation requests
// @Tags Validation
// @Description List own validation requests
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 validationapimodels.ListFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]validationapimodels.ValidationRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/validation/list [post]
func (c *validationApiController) list(ctx *fiber.Ctx) error {
	var payload validationapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	list, err := c.handler.List(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation list error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Export validation requests to xlsx
// @Tags Validation
// @Description Export validation requests to xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} byte
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/validation/export [get]
func (c *validationApiController) export(ctx *fiber.Ctx) error {
	list, err := c.handler.ListAll()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation export error")
	}
	report, err := c.xlsExport.ExportValidationReport(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation export error")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="validations.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(report)
}

// @Summary Get a validation request by id
// @Tags Validation
// @Description Get a validation request by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=validationapimodels.ValidationRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/validation/{id} [get]
func (c *validationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := c.handler.GetByID(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation fetch error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve a validation request with the manager signature
// @Tags Validation
// @Description Approve a validation request with the manager signature
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 validationapimodels.DecisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/validation/{id}/approve [put]
func (c *validationApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if middleware.GetUserRole(ctx) != models.ManagerRole {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("manager role required"))
	}
	var payload validationapimodels.DecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = c.handler.Approve(ctx.UserContext(), id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation approval error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reject a validation request
// @Tags Validation
// @Description Reject a validation request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/validation/{id}/reject [put]
func (c *validationApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if middleware.GetUserRole(ctx) != models.ManagerRole {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("manager role required"))
	}
	userID := middleware.GetUserID(ctx)
	err = c.handler.Reject(ctx.UserContext(), id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation rejection error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Sync a validation request to the read view and live sessions
// @Tags Validation
// @Description Sync a validation request to the read view and live sessions
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/validation/{id}/sync [post]
func (c *validationApiController) sync(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = c.handler.Sync(ctx.UserContext(), id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation sync error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
