package server

import (
	"errors"
	"net/http"

	perrors "github.com/tessro/paradium/internal/errors"
	"github.com/tessro/paradium/internal/power"
)

// statusFor maps a controller error to an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, perrors.ErrUnknownCommand), errors.Is(err, perrors.ErrInvalidStationID):
		return http.StatusBadRequest
	case errors.Is(err, perrors.ErrStationNotFound):
		return http.StatusNotFound
	case errors.Is(err, perrors.ErrNoStations):
		return http.StatusConflict
	case errors.Is(err, power.ErrDisabled):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

// errorMessage is the client-facing text for err.
func errorMessage(err error) string {
	var uc *perrors.UnknownCommandError
	if errors.As(err, &uc) {
		return "Unknown command: " + uc.Command
	}
	return err.Error()
}
