package sqlrepo

import (
	"context"
	"strings"

	"github.com/applybureau/bureau/internal/bureau/domain"
)

type clientsRepo struct {
	q *Queries
}

const clientColumns = `id, consultation_id, email, full_name, password_hash, created_at`

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.q.exec(ctx, `INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.ConsultationID, strings.ToLower(c.Email), c.FullName, c.PasswordHash, c.CreatedAt.UTC(),
	)
	return err
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	return r.getBy(ctx, "id", id)
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	return r.getBy(ctx, "email", strings.ToLower(email))
}

func (r *clientsRepo) GetClientByConsultation(ctx context.Context, consultationID string) (domain.Client, error) {
	return r.getBy(ctx, "consultation_id", consultationID)
}

// getBy is only called with fixed column names.
func (r *clientsRepo) getBy(ctx context.Context, column, value string) (domain.Client, error) {
	var c domain.Client
	err := r.q.queryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE `+column+` = ?`, value).Scan(
		&c.ID, &c.ConsultationID, &c.Email, &c.FullName, &c.PasswordHash, &c.CreatedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}
