package handler

import (
	"log/slog"
	"net/http"

	"github.com/isometry/lw-quarantine-app/internal/errs"
	"github.com/isometry/lw-quarantine-app/internal/models"
)

// Client-facing messages. Failure details are only ever logged.
const (
	MessageTagged      = "Tag added successfully"
	MessageExternalAPI = "Error while calling external API."
	MessageUnexpected  = "An unexpected error occurred."
)

// ErrorResponse logs err and maps its Kind to one of the three response classes.
func ErrorResponse(logger *slog.Logger, err error) models.Response {
	kind := errs.KindOf(err)
	switch kind {
	case errs.KindInvalidPayload:
		logger.Warn("rejecting payload", slog.Any("error", err))
		return jsonResponse(http.StatusBadRequest, models.ErrorBody{Error: errs.PublicMessage(err)})
	case errs.KindExternalAPI:
		logger.Error("error while calling external API", slog.String("kind", kind.String()), slog.Any("error", err))
		return jsonResponse(http.StatusInternalServerError, models.ErrorBody{Error: MessageExternalAPI})
	default:
		logger.Error("an unexpected error occurred", slog.String("kind", kind.String()), slog.Any("error", err))
		return jsonResponse(http.StatusInternalServerError, models.ErrorBody{Error: MessageUnexpected})
	}
}
