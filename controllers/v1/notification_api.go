package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	"timesheet-backend/lib/notifier"
	"timesheet-backend/middleware"
	apimodels "timesheet-backend/models/api"
)

type notificationApiController struct {
	controllers.BaseAPIController
	handler notifier.Provider
}

func InitNotificationApiRouters(app *fiber.App, handler notifier.Provider) {
	controller := notificationApiController{
		handler: handler,
	}
	app.Get("notifications", controller.list)
}

// @Summary List own notifications
// @Tags Notifications
// @Description List own notifications, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.Notification}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := c.handler.History(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Notification list error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
