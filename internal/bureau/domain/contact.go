package domain

import "time"

// ContactRequest is a general enquiry from the public contact form. It has
// no lifecycle.
type ContactRequest struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}
