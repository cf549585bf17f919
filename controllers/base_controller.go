package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"timesheet-backend/models"
	apimodels "timesheet-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request body parse error")
		return errors.New("failed to read request body")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("record id is not specified")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError maps a handler error to an HTTP status and a structured body
// carrying the error kind; internal details are not leaked to the caller.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	logger.WithError(err).Error(msg)
	kind := models.ErrorKind(err)
	return ctx.Status(statusForKind(kind)).JSON(apimodels.NewKindError(kind, msg))
}

func statusForKind(kind string) int {
	switch kind {
	case "InvalidInput", "SignatureMissing", "MalformedDocument":
		return fiber.StatusBadRequest
	case "Unauthenticated":
		return fiber.StatusUnauthorized
	case "PermissionDenied":
		return fiber.StatusForbidden
	case "NotFound":
		return fiber.StatusNotFound
	case "UpstreamFailure", "DownloadFailed", "UploadFailed":
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
