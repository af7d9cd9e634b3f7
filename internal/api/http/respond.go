package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-papergen/internal/paper"
	"github.com/mind-engage/mindengage-papergen/internal/storage"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, paper.ErrPaperNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, paper.ErrUnknownSubject), errors.Is(err, paper.ErrNoPattern),
		errors.Is(err, storage.ErrInvalidSubject), errors.Is(err, storage.ErrBadKey):
		return http.StatusBadRequest
	case errors.Is(err, paper.ErrNoBlobStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Errorw("request failed", "err", err)
		http.Error(w, "internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}
