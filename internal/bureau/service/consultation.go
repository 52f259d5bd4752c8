package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/idx"
	"github.com/applybureau/bureau/pkg/slogx"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFilter selects consultations for the staff dashboard.
type ListFilter struct {
	Statuses []string
	Email    string
	Query    string
	Limit    int
	Offset   int
}

type ListResult struct {
	Items  []domain.Consultation
	Total  int
	Limit  int
	Offset int
}

// ConsultationService serves the read side of the staff dashboard.
type ConsultationService struct {
	Store store.Store
}

func (s *ConsultationService) Get(ctx context.Context, id string) (domain.Consultation, error) {
	id, err := idx.ParseUUID(id)
	if err != nil {
		return domain.Consultation{}, ErrConsultationNotFound
	}

	c, err := s.Store.Consultations().GetConsultation(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Consultation{}, ErrConsultationNotFound
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to get consultation", slog.String("consultation_id", id), slog.Any("error", err))
		return domain.Consultation{}, dependency("get consultation", err)
	}
	return c, nil
}

// List returns one page, newest first. Limit defaults to DefaultPageSize
// and is capped at MaxPageSize.
func (s *ConsultationService) List(ctx context.Context, f ListFilter) (ListResult, error) {
	var v ValidationError

	filter := store.ConsultationFilter{
		Query:  strings.TrimSpace(f.Query),
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	for _, raw := range f.Statuses {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			st, err := domain.ParseStatus(part)
			if err != nil {
				v.add("status", fmt.Sprintf("unknown status %q", part))
				continue
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}

	if email := strings.TrimSpace(f.Email); email != "" {
		filter.Email = strings.ToLower(email)
	}

	switch {
	case filter.Limit < 0:
		v.add("limit", "must not be negative")
	case filter.Limit == 0:
		filter.Limit = DefaultPageSize
	case filter.Limit > MaxPageSize:
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		v.add("offset", "must not be negative")
	}
	if tooLong(filter.Query, maxNameLen) {
		v.add("q", "is too long")
	}
	if err := v.err(); err != nil {
		return ListResult{}, err
	}

	items, total, err := s.Store.Consultations().ListConsultations(ctx, filter)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list consultations", slog.Any("error", err))
		return ListResult{}, dependency("list consultations", err)
	}

	return ListResult{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Counts returns the number of consultations in every status, including
// the empty ones.
func (s *ConsultationService) Counts(ctx context.Context) (map[domain.Status]int, error) {
	counts, err := s.Store.Consultations().CountByStatus(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to count consultations", slog.Any("error", err))
		return nil, dependency("count consultations", err)
	}

	out := make(map[domain.Status]int, len(domain.Statuses))
	for _, st := range domain.Statuses {
		out[st] = counts[st]
	}
	return out, nil
}
