package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	wsclient "timesheet-backend/lib/ws/client"
	connectionhub "timesheet-backend/lib/ws/hub/connection-hub"
	"timesheet-backend/middleware"
)

func InitWs(app *fiber.App, hub connectionhub.Provider) {
	controller := wsController{hub: hub}
	app.Use("", func(ctx *fiber.Ctx) error {
		userID := middleware.GetUserID(ctx)
		ctx.Locals("userID", userID)
		return ctx.Next()
	})
	app.Get("/", websocket.New(controller.sessionHandler))
}

type wsController struct {
	hub connectionhub.Provider
}

// @Summary Live validation updates
// @Tags Websocket
// @Description Live validation updates
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func (w *wsController) sessionHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	client := wsclient.NewClient(userID, c)
	w.hub.AddClient(userID, c)
	defer func() {
		w.hub.DeleteClient(userID)
	}()
	client.Dispatch()
}
