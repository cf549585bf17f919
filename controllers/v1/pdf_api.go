package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	regenqueue "timesheet-backend/lib/regen-queue"
	apimodels "timesheet-backend/models/api"
	validationapimodels "timesheet-backend/models/api/validation"
)

type pdfApiController struct {
	controllers.BaseAPIController
	queueHandler regenqueue.Provider
}

func InitPdfApiRouters(app *fiber.App, queueHandler regenqueue.Provider) {
	controller := pdfApiController{
		queueHandler: queueHandler,
	}
	app.Route("pdf", func(router fiber.Router) {
		router.Post("regenerate", controller.regenerate)
		router.Post("process_queue", controller.processQueue)
	})
}

// @Summary Regenerate the pdf of one validation with the manager signature
// @Tags PDF
// @Description Regenerate the pdf of one validation with the manager signature
// @Param	body body	 validationapimodels.RegenerateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=validationapimodels.RegenerateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pdf/regenerate [post]
func (c *pdfApiController) regenerate(ctx *fiber.Ctx) error {
	var payload validationapimodels.RegenerateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Validation ID is required")
	}
	newPath, err := c.queueHandler.Regenerate(ctx.UserContext(), payload.ValidationID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "PDF regeneration error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(validationapimodels.RegenerateResult{NewPath: newPath}))
}

// @Summary Drain the pdf regeneration queue
// @Tags PDF
// @Description Drain the pdf regeneration queue; per-job failures are reported as data
// @Success 200 {object} apimodels.Response{data=validationapimodels.QueueResult}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pdf/process_queue [post]
func (c *pdfApiController) processQueue(ctx *fiber.Ctx) error {
	result, err := c.queueHandler.ProcessQueue(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Queue drain error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
