package http

import (
	"net/http"

	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/httpx"
)

type MeHandler struct {
	ClientService *service.ClientService
}

// ServeHTTP godoc
//
//	@Summary		Client Profile
//	@Description	The signed-in client's account and consultation.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	bureausdk.MeResponse	"client_id, email, consultation"
//	@Failure		401	{object}	bureausdk.ErrorResponse	"invalid_token"
//	@Failure		403	{object}	bureausdk.ErrorResponse	"insufficient_scope"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ClientService.Profile(r.Context(), httpx.SubjectFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bureausdk.MeResponse{
		ClientID:     profile.Client.ID,
		Email:        profile.Client.Email,
		FullName:     profile.Client.FullName,
		CreatedAt:    profile.Client.CreatedAt,
		Consultation: toSDKConsultation(profile.Consultation),
	})
}
