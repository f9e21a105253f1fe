package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tourze/ganet-tracking-service/internal/domain"
)

func writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPublisherRequired),
		errors.Is(err, domain.ErrTargetURLRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("tracking operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
