package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/httpx"
	"github.com/applybureau/bureau/pkg/sentryx"
	"github.com/applybureau/bureau/pkg/slogx"
)

func writeError(w http.ResponseWriter, status int, code, desc string) {
	httpx.WriteJSON(w, status, bureausdk.ErrorResponse{Error: code, ErrorDescription: desc})
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	writeError(w, http.StatusBadRequest, bureausdk.ErrorCodeInvalidRequest, desc)
}

// writeServiceError maps service errors onto the API's error responses.
// Anything unrecognised is logged, reported and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *service.ValidationError
		terr *service.TransitionError
	)

	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, bureausdk.ErrorResponse{
			Error:            bureausdk.ErrorCodeInvalidRequest,
			ErrorDescription: "request validation failed",
			Details:          verr.Fields,
		})
	case errors.Is(err, service.ErrInvalidInput):
		writeBadRequest(w, err.Error())

	case errors.As(err, &terr):
		allowed := make([]string, 0, len(terr.Allowed))
		for _, s := range terr.Allowed {
			allowed = append(allowed, string(s))
		}
		httpx.WriteJSON(w, http.StatusConflict, bureausdk.ErrorResponse{
			Error:            bureausdk.ErrorCodeInvalidTransition,
			ErrorDescription: fmt.Sprintf("cannot move a %s consultation to %s", terr.From, terr.To),
			CurrentStatus:    string(terr.From),
			AllowedStatuses:  allowed,
		})

	case errors.Is(err, service.ErrConsultationNotFound):
		writeError(w, http.StatusNotFound, bureausdk.ErrorCodeNotFound, "consultation not found")
	case errors.Is(err, service.ErrClientNotFound), errors.Is(err, service.ErrStaffNotFound):
		writeError(w, http.StatusNotFound, bureausdk.ErrorCodeNotFound, "account not found")

	case errors.Is(err, service.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, bureausdk.ErrorCodeInvalidToken, "registration link is invalid")
	case errors.Is(err, service.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, bureausdk.ErrorCodeTokenExpired, "registration link has expired")
	case errors.Is(err, service.ErrTokenAlreadyUsed):
		writeError(w, http.StatusForbidden, bureausdk.ErrorCodeTokenAlreadyUsed, "registration link has already been used")
	case errors.Is(err, service.ErrAccountExists):
		writeError(w, http.StatusConflict, bureausdk.ErrorCodeAccountExists, "an account already exists for this email")

	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, bureausdk.ErrorCodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, service.ErrMFARequired):
		writeError(w, http.StatusUnauthorized, bureausdk.ErrorCodeMFARequired, "a one-time code is required")
	case errors.Is(err, service.ErrInvalidOTP):
		writeError(w, http.StatusUnauthorized, bureausdk.ErrorCodeInvalidOTP, "invalid one-time code")
	case errors.Is(err, service.ErrMFANotEnrolled):
		writeError(w, http.StatusConflict, bureausdk.ErrorCodeConflict, "no pending TOTP enrollment")
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		writeError(w, http.StatusConflict, bureausdk.ErrorCodeConflict, "TOTP is already enabled")

	default:
		writeInternalError(w, r, err)
	}
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	sentryx.CaptureError(r.Context(), err, map[string]any{
		"method":  r.Method,
		"pattern": r.Pattern,
	})
	writeError(w, http.StatusInternalServerError, bureausdk.ErrorCodeServerError, "internal server error")
}
