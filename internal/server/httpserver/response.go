package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authservice/internal/common"
	"github.com/dmitrijs2005/authservice/internal/dbx"
)

type errorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details"`
}

// statusFor is the single place where error kinds become HTTP statuses.
func statusFor(kind common.Kind) int {
	switch kind {
	case common.KindAuthenticationFailed, common.KindRefreshExpired, common.KindRefreshInvalid:
		return http.StatusUnauthorized
	case common.KindAlreadyExists, common.KindBadRequest, common.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := common.KindOf(err)
	status := statusFor(kind)

	resp := errorResponse{Message: common.ErrInternal.Message}
	var e *common.Error
	if errors.As(err, &e) && kind != common.KindInternal {
		resp.Message = e.Message
		resp.Details = e.Details
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "kind", kind.String(), "error", err)
	}

	writeJSON(w, status, resp)
}


type handlerFunc func(r *http.Request) (int, any, error)

// txHandlerFunc runs inside the request transaction; its response is only
// written after a successful commit.
type txHandlerFunc func(r *http.Request, tx dbx.DBTX) (int, any, error)

func (s *HTTPServer) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body, err := h(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, status, body)
	}
}

func (s *HTTPServer) withTx(h txHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			status int
			body   any
		)

		err := dbx.WithTx(r.Context(), s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			var err error
			status, body, err = h(r.WithContext(ctx), tx)
			return err
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		writeJSON(w, status, body)
	}
}
