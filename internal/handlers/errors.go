package handlers

import (
	"errors"
	"time"

	"stockflow/internal/models"
	"stockflow/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Status    int                  `json:"status"`
	Message   string               `json:"message"`
	Details   []string             `json:"details"`
	Timestamp models.LocalDateTime `json:"timestamp"`
	Path      string               `json:"path"`
}

// statusByKind maps service error kinds to HTTP statuses.
var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:    fiber.StatusBadRequest,
	services.KindNotFound:      fiber.StatusNotFound,
	services.KindAlreadyExists: fiber.StatusConflict,
	services.KindInternal:      fiber.StatusInternalServerError,
}

// ErrorHandler is the fiber error handler: it renders any error returned by
// a handler or middleware as an ErrorResponse.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		resp := ErrorResponse{
			Timestamp: models.NewLocalDateTime(time.Now()),
			Path:      c.Path(),
			Details:   []string{},
		}

		var fiberErr *fiber.Error
		var svcErr *services.Error
		switch {
		case errors.As(err, &fiberErr):
			resp.Status = fiberErr.Code
			resp.Message = fiberErr.Message
		case errors.As(err, &svcErr):
			resp.Status = statusByKind[svcErr.Kind]
			resp.Message = svcErr.Message
			if svcErr.Details != nil {
				resp.Details = svcErr.Details
			}
		default:
			resp.Status = fiber.StatusInternalServerError
			resp.Message = "internal server error"
			resp.Details = []string{err.Error()}
		}

		if resp.Status == 0 {
			resp.Status = fiber.StatusInternalServerError
		}
		if resp.Status >= fiber.StatusInternalServerError {
			// internal causes stay in the log and the details field only
			resp.Message = "internal server error"
			logger.Error().Err(err).Str("path", resp.Path).Msg("request failed")
		} else {
			logger.Warn().Int("status", resp.Status).Str("path", resp.Path).Msg(resp.Message)
		}

		return c.Status(resp.Status).JSON(resp)
	}
}
