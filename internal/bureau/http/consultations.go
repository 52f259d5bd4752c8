package http

import (
	"net/http"
	"strconv"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/service"
	"github.com/applybureau/bureau/pkg/bureausdk"
	"github.com/applybureau/bureau/pkg/httpx"
)

type IntakeHandler struct {
	IntakeService *service.IntakeService
}

// ServeHTTP godoc
//
//	@Summary		Submit Consultation Request
//	@Description	Public intake form. Creates a consultation in status lead and emails an acknowledgment.
//	@Description	Either message or at least one proposed slot is required.
//	@Tags			Consultations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bureausdk.ConsultationRequest				true	"Consultation request"
//	@Success		201		{object}	bureausdk.ConsultationCreatedResponse	"id, status, created_at"
//	@Failure		400		{object}	bureausdk.ErrorResponse					"error, error_description, details"
//	@Failure		429		{object}	bureausdk.ErrorResponse					"rate limit exceeded"
//	@Failure		500		{object}	bureausdk.ErrorResponse					"error, error_description"
//	@Router			/v1/consultations [post].
func (h *IntakeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req bureausdk.ConsultationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "request body must be a JSON object")
		return
	}

	c, err := h.IntakeService.Submit(r.Context(), service.IntakeRequest{
		FullName:            req.FullName,
		Email:               req.Email,
		Phone:               req.Phone,
		LinkedInURL:         req.LinkedInURL,
		RoleTargets:         req.RoleTargets,
		LocationPreferences: req.LocationPreferences,
		MinimumSalary:       req.MinimumSalary,
		TargetMarket:        req.TargetMarket,
		EmploymentStatus:    req.EmploymentStatus,
		PackageInterest:     req.PackageInterest,
		AreaOfConcern:       req.AreaOfConcern,
		ConsultationWindow:  req.ConsultationWindow,
		Message:             req.Message,
		ProposedSlots:       fromSDKSlots(req.ProposedSlots),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, bureausdk.ConsultationCreatedResponse{
		ID:        c.ID,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	})
}

// ConsultationsHandler serves the staff dashboard.
type ConsultationsHandler struct {
	ConsultationService *service.ConsultationService
	TransitionService   *service.TransitionService
	AppBaseURL          string
}

// HandleList godoc
//
//	@Summary		List Consultations
//	@Description	Newest first. status accepts a comma separated list; q matches name or email case-insensitively.
//	@Tags			Consultations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status	query		string						false	"Statuses, comma separated"
//	@Param			email	query		string						false	"Exact email"
//	@Param			q		query		string						false	"Search name or email"
//	@Param			limit	query		int							false	"Page size (default 20, max 100)"
//	@Param			offset	query		int							false	"Offset"
//	@Success		200		{object}	bureausdk.ConsultationList	"items, total, limit, offset"
//	@Failure		400		{object}	bureausdk.ErrorResponse		"error, error_description, details"
//	@Failure		401		{object}	bureausdk.ErrorResponse		"invalid_token"
//	@Failure		403		{object}	bureausdk.ErrorResponse		"insufficient_scope"
//	@Router			/v1/consultations [get].
func (h *ConsultationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, ok := intParam(w, q.Get("limit"), "limit")
	if !ok {
		return
	}
	offset, ok := intParam(w, q.Get("offset"), "offset")
	if !ok {
		return
	}

	res, err := h.ConsultationService.List(r.Context(), service.ListFilter{
		Statuses: q["status"],
		Email:    q.Get("email"),
		Query:    q.Get("q"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items := make([]bureausdk.Consultation, 0, len(res.Items))
	for _, c := range res.Items {
		items = append(items, toSDKConsultation(c))
	}
	httpx.WriteJSON(w, http.StatusOK, bureausdk.ConsultationList{
		Items:  items,
		Total:  res.Total,
		Limit:  res.Limit,
		Offset: res.Offset,
	})
}

// HandleGet godoc
//
//	@Summary		Get Consultation
//	@Tags			Consultations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Consultation ID (UUID)"
//	@Success		200	{object}	bureausdk.Consultation	"consultation"
//	@Failure		404	{object}	bureausdk.ErrorResponse	"not_found"
//	@Router			/v1/consultations/{id} [get].
func (h *ConsultationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ConsultationService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKConsultation(c))
}

// HandleStats godoc
//
//	@Summary		Consultation Counts
//	@Description	Number of consultations per status.
//	@Tags			Consultations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	bureausdk.StatsResponse	"counts, total"
//	@Router			/v1/consultations/stats [get].
func (h *ConsultationsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.ConsultationService.Counts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := bureausdk.StatsResponse{Counts: make(map[string]int, len(counts))}
	for st, n := range counts {
		out.Counts[string(st)] = n
		out.Total += n
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleTransition godoc
//
//	@Summary		Transition Consultation
//	@Description	Moves the consultation along the lifecycle graph and emails the prospect.
//	@Description	payment_verified requires payment_method, payment_amount and payment_reference and returns the registration token.
//	@Description	scheduled requires slot_index; waitlisted and rejected require reason.
//	@Tags			Consultations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Consultation ID (UUID)"
//	@Param			request	body		bureausdk.TransitionRequest		true	"Target status and edge fields"
//	@Success		200		{object}	bureausdk.TransitionResponse	"consultation, previous_status, registration_token"
//	@Failure		400		{object}	bureausdk.ErrorResponse			"error, error_description, details"
//	@Failure		404		{object}	bureausdk.ErrorResponse			"not_found"
//	@Failure		409		{object}	bureausdk.ErrorResponse			"invalid_transition"
//	@Router			/v1/consultations/{id} [patch].
func (h *ConsultationsHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, bureausdk.ErrorCodeInvalidToken, "missing access token")
		return
	}

	var req bureausdk.TransitionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "request body must be a JSON object")
		return
	}
	if req.Status == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, bureausdk.ErrorResponse{
			Error:            bureausdk.ErrorCodeInvalidRequest,
			ErrorDescription: "request validation failed",
			Details:          map[string]string{"status": "is required"},
		})
		return
	}

	res, err := h.TransitionService.Transition(r.Context(), r.PathValue("id"), domain.Status(req.Status), service.ActorFromClaims(claims), service.TransitionInput{
		PaymentMethod:    req.PaymentMethod,
		PaymentAmount:    req.PaymentAmount,
		PaymentReference: req.PaymentReference,
		PackageTier:      req.PackageTier,
		SlotIndex:        req.SlotIndex,
		MeetingLink:      req.MeetingLink,
		Reason:           req.Reason,
		AdminNotes:       req.AdminNotes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := bureausdk.TransitionResponse{
		Consultation:   toSDKConsultation(res.Consultation),
		PreviousStatus: string(res.From),
	}
	if res.RegistrationToken != "" {
		out.RegistrationToken = res.RegistrationToken
		out.RegistrationURL = service.RegistrationURL(h.AppBaseURL, res.RegistrationToken)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// intParam parses an optional integer query parameter, answering 400 when
// it is malformed.
func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, bureausdk.ErrorResponse{
			Error:            bureausdk.ErrorCodeInvalidRequest,
			ErrorDescription: "request validation failed",
			Details:          map[string]string{name: "must be an integer"},
		})
		return 0, false
	}
	return n, true
}
