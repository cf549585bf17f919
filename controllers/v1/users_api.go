package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"timesheet-backend/controllers"
	"timesheet-backend/lib/users"
	"timesheet-backend/middleware"
	apimodels "timesheet-backend/models/api"
	usersapimodels "timesheet-backend/models/api/users"
)

type usersApiController struct {
	controllers.BaseAPIController
	handler users.Provider
}

// InitRegApiRouters wires the public registration endpoint.
func InitRegApiRouters(app *fiber.App, handler users.Provider) {
	controller := usersApiController{
		handler: handler,
	}
	app.Post("users/register", controller.register)
}

// InitUsersApiRouters wires the authenticated profile endpoints.
func InitUsersApiRouters(app *fiber.App, handler users.Provider) {
	controller := usersApiController{
		handler: handler,
	}
	app.Route("users", func(router fiber.Router) {
		router.Get("profile", controller.profile)
		router.Put("fcm_token", controller.setFCMToken)
	})
}

// @Summary Register an account
// @Tags Users
// @Description Register an account and receive an access token
// @Param	body body	 usersapimodels.RegisterData	true	"request body"
// @Success 200 {object} apimodels.Response{data=usersapimodels.RegisterResult}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/register [post]
func (c *usersApiController) register(ctx *fiber.Ctx) error {
	var payload usersapimodels.RegisterData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := c.handler.Register(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "User registration error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Get own profile
// @Tags Users
// @Description Get own profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=usersapimodels.ProfileView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/profile [get]
func (c *usersApiController) profile(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := c.handler.GetProfile(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Profile fetch error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Register a device push token
// @Tags Users
// @Description Register a device push token
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 usersapimodels.FCMTokenData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/fcm_token [put]
func (c *usersApiController) setFCMToken(ctx *fiber.Ctx) error {
	var payload usersapimodels.FCMTokenData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := c.handler.RegisterFCMToken(userID, payload.Token); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Push token registration error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
