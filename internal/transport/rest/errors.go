package rest

import (
	"errors"
	"net/http"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/logger"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/reqctx"
	"github.com/gorden73/Explore-with-me-sub000/internal/transport/rest/response"
)

// WriteError is the exported entry point for other transports sharing the
// same taxonomy.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	writeErr(w, r, err)
}

// writeErr maps the error taxonomy onto HTTP statuses. Anything outside the
// taxonomy is a 500 with a generic body; the details stay in the log.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	rid := reqctx.RequestID(r.Context())

	var ae *domain.AppError
	if errors.As(err, &ae) {
		response.Fail(w, statusFor(ae.Code), string(ae.Code), ae.Message, ae.Meta, rid)
		return
	}

	logger.Logger.Error().
		Err(err).
		Str("request_id", rid).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("unhandled error")
	response.Fail(w, http.StatusInternalServerError, "internal_error", "internal error", nil, rid)
}

func statusFor(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
