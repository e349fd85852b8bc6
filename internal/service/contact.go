package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/jobs"
)

// ContactService handles website contact-form submissions and their admin
// triage.
type ContactService interface {
	// Submit validates and persists a submission, then stages the admin
	// notification. The notification is best-effort; a queue failure never
	// fails the submission.
	Submit(ctx context.Context, sub ContactSubmission) (*domain.ContactMessage, error)

	ListMessages(ctx context.Context, status *domain.ContactStatus) ([]domain.ContactMessage, error)
	GetMessage(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error)
	SetMessageStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error
}

// ContactSubmission is the validated contact-form input.
type ContactSubmission struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// ContactMessageStore is the contact persistence consumed here.
type ContactMessageStore interface {
	Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context, status *domain.ContactStatus) ([]domain.ContactMessage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error
}

var contactValidator = validator.New()

type contactService struct {
	messages ContactMessageStore
	queue    jobs.Queue
	logger   *slog.Logger
}

// NewContactService creates the contact-form service.
func NewContactService(messages ContactMessageStore, queue jobs.Queue, logger *slog.Logger) ContactService {
	return &contactService{
		messages: messages,
		queue:    queue,
		logger:   logger.With("component", "contact"),
	}
}

func (s *contactService) Submit(ctx context.Context, sub ContactSubmission) (*domain.ContactMessage, error) {
	if err := contactValidator.Struct(sub); err != nil {
		verr := &domain.ValidationError{Op: "contact.submit", Fields: map[string]string{}}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verr.Fields[strings.ToLower(fe.Field())] = validationMessage(fe)
			}
		}
		return nil, verr
	}

	msg, err := s.messages.Create(ctx, &domain.ContactMessage{
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Subject:   sub.Subject,
		Message:   sub.Message,
		Status:    domain.ContactNew,
	})
	if err != nil {
		return nil, err
	}

	if err := jobs.EnqueueContactNotificationEmail(ctx, s.queue, jobs.ContactNotificationPayload{
		FirstName: msg.FirstName,
		LastName:  msg.LastName,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Subject:   msg.Subject,
		Message:   msg.Message,
	}); err != nil {
		s.logger.Error("failed to enqueue contact notification", "message_id", msg.ID, "error", err)
	}

	return msg, nil
}

func (s *contactService) ListMessages(ctx context.Context, status *domain.ContactStatus) ([]domain.ContactMessage, error) {
	return s.messages.List(ctx, status)
}

func (s *contactService) GetMessage(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	return s.messages.GetByID(ctx, id)
}

func (s *contactService) SetMessageStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error {
	if !domain.ValidContactStatus(status) {
		return ErrInvalidContactStatus
	}
	return s.messages.SetStatus(ctx, id, status)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Email address is invalid"
	default:
		return "This field is invalid"
	}
}
