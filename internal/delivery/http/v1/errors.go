package v1

import (
	"context"
	"errors"
	"net/http"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/logger"
	"catalog-backend/pkg/utils"
)

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsConflict(err):
		return http.StatusConflict
	case domain.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error().Err(err).Msg("request failed")
		if status == http.StatusInternalServerError {
			utils.WriteError(w, status, "Internal server error")
			return
		}
	}
	utils.WriteError(w, status, err.Error())
}
