package handlers

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Error: message,
		Code:  status,
	})
}

// serviceError renders known service failures. Anything else is returned
// unchanged for the app error handler to log and report as a 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedMediaType):
		return respondError(c, fiber.StatusBadRequest, "Unsupported file type")
	case errors.Is(err, services.ErrValidation):
		return respondError(c, fiber.StatusBadRequest, clientMessage(err, services.ErrValidation))
	case errors.Is(err, services.ErrConflict):
		return respondError(c, fiber.StatusConflict, clientMessage(err, services.ErrConflict))
	case errors.Is(err, services.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, clientMessage(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrIndexDisabled):
		return respondError(c, fiber.StatusNotFound, "Review search is not enabled")
	default:
		return err
	}
}

// clientMessage returns the detail that follows the sentinel in err's
// message, capitalised. It falls back to the sentinel text.
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if idx := strings.Index(msg, prefix); idx >= 0 {
		msg = msg[idx+len(prefix):]
	} else {
		msg = sentinel.Error()
	}

	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
