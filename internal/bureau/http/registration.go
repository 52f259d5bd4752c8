package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/httpx"
)

type RegistrationHandler struct {
	RegistrationService *service.RegistrationService
}

// HandleValidate godoc
//
//	@Summary		Validate Registration Token
//	@Description	Checks a registration link without consuming it. Every failure returns the same 401 body.
//	@Tags			Registration
//	@Produce		json
//	@Param			token	path		string							true	"Registration token"
//	@Success		200		{object}	bureausdk.ValidateTokenResponse	"valid, email, full_name, expires_at"
//	@Failure		401		{object}	bureausdk.ErrorResponse			"invalid_token"
//	@Failure		500		{object}	bureausdk.ErrorResponse			"server_error"
//	@Router			/v1/consultations/validate-token/{token} [get].
func (h *RegistrationHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	status, err := h.RegistrationService.Validate(r.Context(), r.PathValue("token"))
	switch {
	case errors.Is(err, service.ErrDependency):
		writeInternalError(w, r, err)
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, bureausdk.ErrorCodeInvalidToken, "registration link is invalid or has expired")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bureausdk.ValidateTokenResponse{
		Valid:          true,
		ConsultationID: status.ConsultationID,
		Email:          status.Email,
		FullName:       status.FullName,
		ExpiresAt:      status.ExpiresAt,
	})
}

// HandleRegister godoc
//
//	@Summary		Redeem Registration Token
//	@Description	Consumes the registration token and creates the client account. A token can be redeemed once.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bureausdk.RegisterRequest	true	"token, password"
//	@Success		201		{object}	bureausdk.RegisterResponse	"client_id, access_token"
//	@Failure		400		{object}	bureausdk.ErrorResponse		"invalid_request"
//	@Failure		401		{object}	bureausdk.ErrorResponse		"invalid_token, token_expired"
//	@Failure		403		{object}	bureausdk.ErrorResponse		"token_already_used"
//	@Failure		409		{object}	bureausdk.ErrorResponse		"account_exists"
//	@Router			/v1/consultations/register [post].
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req bureausdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "request body must be a JSON object")
		return
	}
	if req.Token == "" {
		writeBadRequest(w, "token is required")
		return
	}

	res, err := h.RegistrationService.Redeem(r.Context(), req.Token, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := bureausdk.RegisterResponse{
		ClientID:       res.Client.ID,
		ConsultationID: res.Client.ConsultationID,
		Email:          res.Client.Email,
	}
	if res.Session.AccessToken != "" {
		out.TokenResponse = tokenResponse(res.Session)
	} else {
		out.LoginRequired = true
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

func tokenResponse(s service.Session) bureausdk.TokenResponse {
	return bureausdk.TokenResponse{
		AccessToken: s.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.TTL / time.Second),
	}
}
