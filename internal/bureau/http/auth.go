package http

import (
	"net/http"

	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/httpx"
)

type LoginHandler struct {
	StaffService *service.StaffService
}

// ServeHTTP godoc
//
//	@Summary		Staff Login
//	@Description	Exchanges email and password (plus a TOTP code once enabled) for an access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bureausdk.LoginRequest	true	"email, password, otp"
//	@Success		200		{object}	bureausdk.LoginResponse	"access_token, role"
//	@Failure		401		{object}	bureausdk.ErrorResponse	"invalid_credentials, mfa_required, invalid_otp"
//	@Failure		429		{object}	bureausdk.ErrorResponse	"rate limit exceeded"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req bureausdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "request body must be a JSON object")
		return
	}

	sess, err := h.StaffService.Login(r.Context(), req.Email, req.Password, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bureausdk.LoginResponse{
		StaffID:       sess.Staff.ID,
		Role:          string(sess.Staff.Role),
		TokenResponse: tokenResponse(sess.Session),
	})
}

type ClientLoginHandler struct {
	ClientService *service.ClientService
}

// ServeHTTP godoc
//
//	@Summary		Client Login
//	@Description	Exchanges the email and password chosen at registration for a client access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bureausdk.ClientLoginRequest	true	"email, password"
//	@Success		200		{object}	bureausdk.ClientLoginResponse	"access_token"
//	@Failure		401		{object}	bureausdk.ErrorResponse			"invalid_credentials"
//	@Failure		429		{object}	bureausdk.ErrorResponse			"rate limit exceeded"
//	@Router			/v1/auth/client/login [post].
func (h *ClientLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req bureausdk.ClientLoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "request body must be a JSON object")
		return
	}

	sess, err := h.ClientService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bureausdk.ClientLoginResponse{
		ClientID:       sess.Client.ID,
		ConsultationID: sess.Client.ConsultationID,
		TokenResponse:  tokenResponse(sess.Session),
	})
}

// MFAHandler manages the caller's own TOTP enrollment.
type MFAHandler struct {
	StaffService *service.StaffService
}

// HandleEnroll godoc
//
//	@Summary		Start TOTP Enrollment
//	@Description	Generates a new secret. It is enforced at login once confirmed with /v1/staff/mfa/totp/verify.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	bureausdk.TOTPEnrollResponse	"secret, otpauth_url"
//	@Failure		409	{object}	bureausdk.ErrorResponse			"conflict"
//	@Router			/v1/staff/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.StaffService.EnrollTOTP(r.Context(), httpx.SubjectFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bureausdk.TOTPEnrollResponse{
		Secret:     enrollment.Secret,
		OTPAuthURL: enrollment.URL,
	})
}

// HandleVerify godoc
//
//	@Summary		Confirm TOTP Enrollment
//	@Tags			Auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	bureausdk.TOTPVerifyRequest	true	"code"
//	@Success		204
//	@Failure		401	{object}	bureausdk.ErrorResponse	"invalid_otp"
//	@Failure		409	{object}	bureausdk.ErrorResponse	"conflict"
//	@Router			/v1/staff/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req bureausdk.TOTPVerifyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "request body must be a JSON object")
		return
	}

	if err := h.StaffService.VerifyTOTP(r.Context(), httpx.SubjectFromContext(r.Context()), req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
