package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/events"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/idx"
	"github.com/applybureau/bureau/pkg/slogx"
)

// IntakeRequest is a public consultation submission.
type IntakeRequest struct {
	FullName    string
	Email       string
	Phone       string
	LinkedInURL string

	RoleTargets         []string
	LocationPreferences []string
	MinimumSalary       string
	TargetMarket        string
	EmploymentStatus    string
	PackageInterest     string
	AreaOfConcern       string
	ConsultationWindow  string
	Message             string
	ProposedSlots       []domain.TimeSlot
}

type IntakeService struct {
	Store    store.Store
	Notifier Notifier

	// StaffInbox receives a notification for every new request. Empty
	// disables it.
	StaffInbox []string

	// AppBaseURL prefixes links in emails, e.g. https://applybureau.com.
	AppBaseURL string

	Now func() time.Time
}

// Submit validates and stores a new consultation in status lead.
// Acknowledgment and staff emails are queued after the write and cannot
// fail the submission.
func (s *IntakeService) Submit(ctx context.Context, req IntakeRequest) (domain.Consultation, error) {
	log := slogx.FromContext(ctx)

	c, err := s.validate(req)
	if err != nil {
		log.Info("consultation intake rejected", slog.Any("error", err))
		return domain.Consultation{}, err
	}

	now := clock(s.Now)
	c.ID = idx.NewUUID()
	c.Status = domain.StatusLead
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.Store.Consultations().CreateConsultation(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// A UUID collision; the caller can retry.
			return domain.Consultation{}, dependency("create consultation", err)
		}
		log.Error("failed to create consultation", slog.Any("error", err))
		return domain.Consultation{}, dependency("create consultation", err)
	}

	log.Info("consultation created",
		slog.String("consultation_id", c.ID),
		slog.Int("proposed_slots", len(c.ProposedSlots)),
	)

	s.notify(ctx, c)
	return c, nil
}

func (s *IntakeService) notify(ctx context.Context, c domain.Consultation) {
	if s.Notifier == nil {
		return
	}

	slots := make([]string, 0, len(c.ProposedSlots))
	for _, slot := range c.ProposedSlots {
		slots = append(slots, slot.String())
	}

	s.Notifier.SendEmail(ctx, []string{c.Email}, mail.TemplateConsultationReceived, mail.Vars{
		"FullName":      c.FullName,
		"ProposedSlots": strings.Join(slots, ", "),
	})

	if len(s.StaffInbox) > 0 {
		s.Notifier.SendEmail(ctx, s.StaffInbox, mail.TemplateStaffNewConsultation, mail.Vars{
			"FullName":        c.FullName,
			"Email":           c.Email,
			"ConsultationID":  c.ID,
			"AdminURL":        fmt.Sprintf("%s/admin/consultations/%s", strings.TrimRight(s.AppBaseURL, "/"), c.ID),
			"Message":         c.Message,
			"PackageInterest": c.PackageInterest,
		})
	}

	s.Notifier.Publish(ctx, events.ConsultationCreated(c))
}

func (s *IntakeService) validate(req IntakeRequest) (domain.Consultation, error) {
	var v ValidationError

	c := domain.Consultation{
		FullName:            strings.TrimSpace(req.FullName),
		Phone:               strings.TrimSpace(req.Phone),
		LinkedInURL:         strings.TrimSpace(req.LinkedInURL),
		RoleTargets:         cleanList(req.RoleTargets),
		LocationPreferences: cleanList(req.LocationPreferences),
		MinimumSalary:       strings.TrimSpace(req.MinimumSalary),
		TargetMarket:        strings.TrimSpace(req.TargetMarket),
		EmploymentStatus:    strings.TrimSpace(req.EmploymentStatus),
		PackageInterest:     strings.TrimSpace(req.PackageInterest),
		AreaOfConcern:       strings.TrimSpace(req.AreaOfConcern),
		ConsultationWindow:  strings.TrimSpace(req.ConsultationWindow),
		Message:             strings.TrimSpace(req.Message),
		ProposedSlots:       slices.Clone(req.ProposedSlots),
	}

	switch {
	case c.FullName == "":
		v.add("full_name", "is required")
	case tooLong(c.FullName, maxNameLen):
		v.add("full_name", "is too long")
	}

	if strings.TrimSpace(req.Email) == "" {
		v.add("email", "is required")
	} else if email, ok := normalizeEmail(req.Email); ok {
		c.Email = email
	} else {
		v.add("email", "is not a valid email address")
	}

	if c.LinkedInURL != "" && !validHTTPURL(c.LinkedInURL) {
		v.add("linkedin_url", "must be an absolute http(s) URL")
	}

	for field, value := range map[string]string{
		"phone":               c.Phone,
		"minimum_salary":      c.MinimumSalary,
		"target_market":       c.TargetMarket,
		"employment_status":   c.EmploymentStatus,
		"package_interest":    c.PackageInterest,
		"area_of_concern":     c.AreaOfConcern,
		"consultation_window": c.ConsultationWindow,
		"linkedin_url":        c.LinkedInURL,
	} {
		if tooLong(value, maxShortLen) {
			v.add(field, "is too long")
		}
	}
	if len(c.RoleTargets) > maxListItems {
		v.add("role_targets", "has too many entries")
	}
	if len(c.LocationPreferences) > maxListItems {
		v.add("location_preferences", "has too many entries")
	}
	if tooLong(c.Message, maxMessageLen) {
		v.add("message", "is too long")
	}

	if len(c.ProposedSlots) > maxSlots {
		v.add("proposed_slots", fmt.Sprintf("at most %d slots may be proposed", maxSlots))
	}
	for i, slot := range c.ProposedSlots {
		slot.Date = strings.TrimSpace(slot.Date)
		slot.Time = strings.TrimSpace(slot.Time)
		if err := slot.Validate(); err != nil {
			v.add(fmt.Sprintf("proposed_slots[%d]", i), "must be a YYYY-MM-DD date and HH:MM time")
			continue
		}
		c.ProposedSlots[i] = slot
	}

	if c.Message == "" && len(c.ProposedSlots) == 0 {
		v.add("message", "a message or at least one proposed slot is required")
	}

	return c, v.err()
}
