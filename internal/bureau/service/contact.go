package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/mail"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/idx"
	"github.com/applybureau/bureau/pkg/slogx"
)

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ContactService stores general enquiries from the public contact form.
type ContactService struct {
	Store      store.Store
	Notifier   Notifier
	StaffInbox []string
	Now        func() time.Time
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) (domain.ContactRequest, error) {
	var v ValidationError

	req := domain.ContactRequest{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}

	switch {
	case req.Name == "":
		v.add("name", "is required")
	case tooLong(req.Name, maxNameLen):
		v.add("name", "is too long")
	}
	if email, ok := normalizeEmail(in.Email); ok {
		req.Email = email
	} else if strings.TrimSpace(in.Email) == "" {
		v.add("email", "is required")
	} else {
		v.add("email", "is not a valid email address")
	}
	switch {
	case req.Message == "":
		v.add("message", "is required")
	case tooLong(req.Message, maxMessageLen):
		v.add("message", "is too long")
	}
	if tooLong(req.Subject, maxShortLen) {
		v.add("subject", "is too long")
	}
	if tooLong(req.Phone, maxShortLen) {
		v.add("phone", "is too long")
	}
	if err := v.err(); err != nil {
		return domain.ContactRequest{}, err
	}

	now := clock(s.Now)
	req.ID = idx.NewAt(now).String()
	req.CreatedAt = now

	if err := s.Store.Contacts().CreateContact(ctx, req); err != nil {
		slogx.FromContext(ctx).Error("failed to store contact request", slog.Any("error", err))
		return domain.ContactRequest{}, dependency("create contact request", err)
	}

	slogx.FromContext(ctx).Info("contact request stored", slog.String("contact_id", req.ID))

	if s.Notifier != nil {
		s.Notifier.SendEmail(ctx, []string{req.Email}, mail.TemplateContactReceived, mail.Vars{"Name": req.Name})
		if len(s.StaffInbox) > 0 {
			subject := req.Subject
			if subject == "" {
				subject = "(no subject)"
			}
			s.Notifier.SendEmail(ctx, s.StaffInbox, mail.TemplateStaffNewContact, mail.Vars{
				"Name":    req.Name,
				"Email":   req.Email,
				"Subject": subject,
				"Message": req.Message,
			})
		}
	}

	return req, nil
}

type ContactList struct {
	Items  []domain.ContactRequest
	Limit  int
	Offset int
}

// List returns contact requests newest first, with the same paging rules as
// consultations.
func (s *ContactService) List(ctx context.Context, limit, offset int) (ContactList, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)
	offset = max(offset, 0)

	items, err := s.Store.Contacts().ListContacts(ctx, limit, offset)
	if err != nil {
		return ContactList{}, dependency("list contact requests", err)
	}
	return ContactList{Items: items, Limit: limit, Offset: offset}, nil
}
