package domain

import (
	"time"

	"github.com/google/uuid"
)

var (
	ErrContactMessageNotFound = &Error{Code: ENOTFOUND, Message: "Contact message not found"}
)

// ContactStatus is the triage state of a contact-form message.
type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactArchived ContactStatus = "archived"
)

// ValidContactStatus reports whether s is one of the triage states.
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactNew, ContactRead, ContactArchived:
		return true
	}
	return false
}

// ContactMessage is a website contact-form submission.
type ContactMessage struct {
	ID        uuid.UUID     `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
