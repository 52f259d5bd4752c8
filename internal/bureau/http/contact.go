package http

import (
	"net/http"

	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/httpx"
)

type ContactHandler struct {
	ContactService *service.ContactService
}

// HandleSubmit godoc
//
//	@Summary		Submit Contact Form
//	@Tags			Contact
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bureausdk.ContactRequest	true	"name, email, message"
//	@Success		201		{object}	bureausdk.ContactResponse	"id, created_at"
//	@Failure		400		{object}	bureausdk.ErrorResponse		"error, error_description, details"
//	@Router			/v1/contact [post].
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req bureausdk.ContactRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "request body must be a JSON object")
		return
	}

	c, err := h.ContactService.Submit(r.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, bureausdk.ContactResponse{ID: c.ID, CreatedAt: c.CreatedAt})
}

// HandleList godoc
//
//	@Summary		List Contact Requests
//	@Tags			Contact
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int						false	"Page size (default 20, max 100)"
//	@Param			offset	query		int						false	"Offset"
//	@Success		200		{object}	bureausdk.ContactList	"items"
//	@Router			/v1/contact [get].
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := intParam(w, q.Get("limit"), "limit")
	if !ok {
		return
	}
	offset, ok := intParam(w, q.Get("offset"), "offset")
	if !ok {
		return
	}

	list, err := h.ContactService.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := bureausdk.ContactList{
		Items:  make([]bureausdk.Contact, 0, len(list.Items)),
		Limit:  list.Limit,
		Offset: list.Offset,
	}
	for _, c := range list.Items {
		out.Items = append(out.Items, toSDKContact(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
