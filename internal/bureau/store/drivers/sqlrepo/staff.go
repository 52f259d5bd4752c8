package sqlrepo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/applybureau/bureau/internal/bureau/domain"
)

type staffRepo struct {
	q *Queries
}

const staffColumns = `id, email, name, role, password_hash, mfa_secret, mfa_enabled_at, created_at, updated_at`

func (r *staffRepo) CreateStaff(ctx context.Context, s domain.Staff) error {
	_, err := r.q.exec(ctx, `INSERT INTO staff (`+staffColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, strings.ToLower(s.Email), s.Name, string(s.Role), s.PasswordHash,
		nullStringPtr(s.MFASecret), nullTime(s.MFAEnabledAt), s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
	)
	return err
}

func (r *staffRepo) GetStaffByID(ctx context.Context, id string) (domain.Staff, error) {
	s, err := scanStaff(r.q.queryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, id))
	return s, mapNotFound(err)
}

func (r *staffRepo) GetStaffByEmail(ctx context.Context, email string) (domain.Staff, error) {
	s, err := scanStaff(r.q.queryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE email = ?`, strings.ToLower(email)))
	return s, mapNotFound(err)
}

func (r *staffRepo) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.q.query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *staffRepo) SetStaffMFASecret(ctx context.Context, id, secret string) error {
	res, err := r.q.exec(ctx,
		`UPDATE staff SET mfa_secret = ?, mfa_enabled_at = NULL, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return notFoundIfNone(res)
}

func (r *staffRepo) EnableStaffMFA(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.exec(ctx,
		`UPDATE staff SET mfa_enabled_at = ?, updated_at = ? WHERE id = ? AND mfa_secret IS NOT NULL`,
		at.UTC(), at.UTC(), id,
	)
	if err != nil {
		return err
	}
	return notFoundIfNone(res)
}

func scanStaff(s scanner) (domain.Staff, error) {
	var (
		st        domain.Staff
		role      string
		secret    sql.NullString
		enabledAt sql.NullTime
	)
	err := s.Scan(&st.ID, &st.Email, &st.Name, &role, &st.PasswordHash, &secret, &enabledAt, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return domain.Staff{}, err
	}
	st.Role = domain.Role(role)
	st.MFASecret = stringPtr(secret)
	st.MFAEnabledAt = timePtr(enabledAt)
	st.CreatedAt = st.CreatedAt.UTC()
	st.UpdatedAt = st.UpdatedAt.UTC()
	return st, nil
}
