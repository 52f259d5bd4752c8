package sqlrepo

import (
	"context"

	"github.com/applybureau/bureau/internal/bureau/domain"
)

type contactsRepo struct {
	q *Queries
}

func (r *contactsRepo) CreateContact(ctx context.Context, c domain.ContactRequest) error {
	_, err := r.q.exec(ctx, `INSERT INTO contact_requests (id, name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.CreatedAt.UTC(),
	)
	return err
}

func (r *contactsRepo) ListContacts(ctx context.Context, limit, offset int) ([]domain.ContactRequest, error) {
	rows, err := r.q.query(ctx, `SELECT id, name, email, phone, subject, message, created_at
		FROM contact_requests ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ContactRequest
	for rows.Next() {
		var c domain.ContactRequest
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}
