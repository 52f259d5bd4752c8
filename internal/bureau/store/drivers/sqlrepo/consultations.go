package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/store"
)

type consultationsRepo struct {
	q *Queries
}

const consultationColumns = `id, full_name, email, phone, linkedin_url,
	role_targets, location_preferences, minimum_salary, target_market,
	employment_status, package_interest, area_of_concern, consultation_window,
	message, proposed_slots, status, status_reason,
	payment_method, payment_amount, payment_reference, payment_verified,
	payment_verified_at, payment_verified_by, package_tier,
	token_hash, token_expires_at, token_used, token_used_at,
	confirmed_slot_index, meeting_link, admin_notes, created_at, updated_at`

func (r *consultationsRepo) CreateConsultation(ctx context.Context, c domain.Consultation) error {
	roles, err := encodeJSON(orEmpty(c.RoleTargets))
	if err != nil {
		return err
	}
	locations, err := encodeJSON(orEmpty(c.LocationPreferences))
	if err != nil {
		return err
	}
	slots, err := encodeJSON(orEmptySlots(c.ProposedSlots))
	if err != nil {
		return err
	}

	_, err = r.q.exec(ctx, `INSERT INTO consultations (
		id, full_name, email, phone, linkedin_url,
		role_targets, location_preferences, minimum_salary, target_market,
		employment_status, package_interest, area_of_concern, consultation_window,
		message, proposed_slots, status, status_reason,
		payment_verified, token_used, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FullName, c.Email, c.Phone, c.LinkedInURL,
		roles, locations, c.MinimumSalary, c.TargetMarket,
		c.EmploymentStatus, c.PackageInterest, c.AreaOfConcern, c.ConsultationWindow,
		c.Message, slots, string(c.Status), c.StatusReason,
		false, false, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	return err
}

func (r *consultationsRepo) GetConsultation(ctx context.Context, id string) (domain.Consultation, error) {
	row := r.q.queryRow(ctx, `SELECT `+consultationColumns+` FROM consultations WHERE id = ?`, id)
	c, err := scanConsultation(row)
	if err != nil {
		return domain.Consultation{}, mapNotFound(err)
	}
	return c, nil
}

func (r *consultationsRepo) ListConsultations(ctx context.Context, f store.ConsultationFilter) ([]domain.Consultation, int, error) {
	var (
		where []string
		args  []any
	)
	if len(f.Statuses) > 0 {
		where = append(where, "status IN ("+placeholders(len(f.Statuses))+")")
		for _, s := range f.Statuses {
			args = append(args, string(s))
		}
	}
	if f.Email != "" {
		where = append(where, "email = ?")
		args = append(args, strings.ToLower(f.Email))
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where = append(where, `(LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`)
		args = append(args, p, p)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM consultations`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count consultations: %w", err)
	}

	rows, err := r.q.query(ctx,
		`SELECT `+consultationColumns+` FROM consultations`+clause+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, f.Limit, f.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()

	var out []domain.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *consultationsRepo) UpdateConsultationIfStatus(ctx context.Context, c domain.Consultation, from domain.Status) error {
	var amount sql.NullFloat64
	if c.Payment.Method != "" {
		amount = sql.NullFloat64{Float64: c.Payment.Amount, Valid: true}
	}
	var slot sql.NullInt64
	if c.ConfirmedSlotIndex != nil {
		slot = sql.NullInt64{Int64: int64(*c.ConfirmedSlotIndex), Valid: true}
	}

	res, err := r.q.exec(ctx, `UPDATE consultations SET
		status = ?, status_reason = ?,
		payment_method = ?, payment_amount = ?, payment_reference = ?, payment_verified = ?,
		payment_verified_at = ?, payment_verified_by = ?, package_tier = ?,
		token_hash = ?, token_expires_at = ?,
		confirmed_slot_index = ?, meeting_link = ?, admin_notes = ?, updated_at = ?
	WHERE id = ? AND status = ?`,
		string(c.Status), c.StatusReason,
		nullString(c.Payment.Method), amount, nullString(c.Payment.Reference), c.Payment.Verified,
		nullTime(c.Payment.VerifiedAt), nullString(c.Payment.VerifiedBy), nullString(c.Payment.PackageTier),
		nullString(c.Registration.TokenHash), nullTime(c.Registration.ExpiresAt),
		slot, c.MeetingLink, c.AdminNotes, c.UpdatedAt.UTC(),
		c.ID, string(from),
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *consultationsRepo) MarkRegistrationUsed(ctx context.Context, id, tokenHash string, at time.Time) error {
	res, err := r.q.exec(ctx, `UPDATE consultations
		SET token_used = ?, token_used_at = ?, updated_at = ?
		WHERE id = ? AND token_hash = ? AND token_used = ?`,
		true, at.UTC(), at.UTC(), id, tokenHash, false,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *consultationsRepo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.q.query(ctx, `SELECT status, COUNT(*) FROM consultations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.Status]int)
	for rows.Next() {
		var (
			s string
			n int
		)
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[domain.Status(s)] = n
	}
	return out, rows.Err()
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func scanConsultation(s scanner) (domain.Consultation, error) {
	var (
		c                                     domain.Consultation
		status                                string
		roles, locations, slots               string
		method, reference, verifiedBy, tier   sql.NullString
		amount                                sql.NullFloat64
		verifiedAt, tokenExpires, tokenUsedAt sql.NullTime
		tokenHash                             sql.NullString
		slotIndex                             sql.NullInt64
	)

	err := s.Scan(
		&c.ID, &c.FullName, &c.Email, &c.Phone, &c.LinkedInURL,
		&roles, &locations, &c.MinimumSalary, &c.TargetMarket,
		&c.EmploymentStatus, &c.PackageInterest, &c.AreaOfConcern, &c.ConsultationWindow,
		&c.Message, &slots, &status, &c.StatusReason,
		&method, &amount, &reference, &c.Payment.Verified,
		&verifiedAt, &verifiedBy, &tier,
		&tokenHash, &tokenExpires, &c.Registration.Used, &tokenUsedAt,
		&slotIndex, &c.MeetingLink, &c.AdminNotes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Consultation{}, err
	}

	if err := decodeJSON(roles, &c.RoleTargets); err != nil {
		return domain.Consultation{}, fmt.Errorf("decode role_targets: %w", err)
	}
	if err := decodeJSON(locations, &c.LocationPreferences); err != nil {
		return domain.Consultation{}, fmt.Errorf("decode location_preferences: %w", err)
	}
	if err := decodeJSON(slots, &c.ProposedSlots); err != nil {
		return domain.Consultation{}, fmt.Errorf("decode proposed_slots: %w", err)
	}

	c.Status = domain.Status(status)
	c.Payment.Method = method.String
	c.Payment.Amount = amount.Float64
	c.Payment.Reference = reference.String
	c.Payment.VerifiedAt = timePtr(verifiedAt)
	c.Payment.VerifiedBy = verifiedBy.String
	c.Payment.PackageTier = tier.String
	c.Registration.TokenHash = tokenHash.String
	c.Registration.ExpiresAt = timePtr(tokenExpires)
	c.Registration.UsedAt = timePtr(tokenUsedAt)
	if slotIndex.Valid {
		i := int(slotIndex.Int64)
		c.ConfirmedSlotIndex = &i
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptySlots(s []domain.TimeSlot) []domain.TimeSlot {
	if s == nil {
		return []domain.TimeSlot{}
	}
	return s
}
