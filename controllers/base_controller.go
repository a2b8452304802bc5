package controllers

import (
	"ats-backend/lib/utils/apperr"
	apimodels "ats-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read data from the request")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("record id is required")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.WithFields(log.Fields{
		"method": ctx.Method(),
		"path":   ctx.Path(),
	})
}

// SendError maps the handler error to a response code. Internal errors are
// logged and replaced with the fallback message so internals never leak.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, fallback string) error {
	status := apperr.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(fallback)
		return ctx.Status(status).JSON(apimodels.NewError(fallback))
	}
	if status == fiber.StatusBadGateway {
		logger.WithError(err).Warn(fallback)
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}
