package domain

import "time"

// Client is the account created when a registration token is redeemed.
type Client struct {
	ID             string
	ConsultationID string
	Email          string
	FullName       string
	PasswordHash   string // argon2id, PHC encoded
	CreatedAt      time.Time
}
