package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/jobs"
	"github.com/rolloffco/rolloff/internal/postgres"
)

// mockContactStore implements ContactMessageStore for testing
type mockContactStore struct {
	CreateFunc    func(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
	ListFunc      func(ctx context.Context, status *domain.ContactStatus) ([]domain.ContactMessage, error)
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error)
	SetStatusFunc func(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error
}

func (m *mockContactStore) Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	msg.ID = uuid.New()
	return msg, nil
}

func (m *mockContactStore) List(ctx context.Context, status *domain.ContactStatus) ([]domain.ContactMessage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrContactMessageNotFound
}

func (m *mockContactStore) SetStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil
}

func validSubmission() ContactSubmission {
	return ContactSubmission{
		FirstName: "Dana",
		LastName:  "Fisher",
		Email:     "dana@example.com",
		Phone:     "801-555-0101",
		Subject:   "Driveway question",
		Message:   "Will a 15 yard fit on a single-car driveway?",
	}
}

func TestContactSubmit_PersistsAndEnqueues(t *testing.T) {
	store := &mockContactStore{}
	queue := &mockQueue{}

	svc := NewContactService(store, queue, testLogger())
	msg, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if msg.Status != domain.ContactNew {
		t.Errorf("status = %q, want new", msg.Status)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0].JobType != jobs.JobTypeContactNotification {
		t.Errorf("enqueued = %+v, want one contact notification", queue.enqueued)
	}
}

func TestContactSubmit_QueueFailureDoesNotFailSubmission(t *testing.T) {
	store := &mockContactStore{}
	queue := &mockQueue{
		EnqueueFunc: func(ctx context.Context, p postgres.EnqueueParams) (*domain.Job, error) {
			return nil, errors.New("queue down")
		},
	}

	svc := NewContactService(store, queue, testLogger())
	msg, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Submit() error = %v, want nil despite queue failure", err)
	}
	if msg == nil {
		t.Fatal("expected the persisted message back")
	}
}

func TestContactSubmit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContactSubmission)
		field  string
	}{
		{"missing first name", func(s *ContactSubmission) { s.FirstName = "" }, "firstname"},
		{"missing email", func(s *ContactSubmission) { s.Email = "" }, "email"},
		{"malformed email", func(s *ContactSubmission) { s.Email = "not-an-email" }, "email"},
		{"missing message", func(s *ContactSubmission) { s.Message = "" }, "message"},
	}

	svc := NewContactService(&mockContactStore{}, &mockQueue{}, testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			_, err := svc.Submit(context.Background(), sub)
			if err == nil {
				t.Fatal("Submit() expected validation error")
			}
			fields := domain.GetValidationFields(err)
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("validation fields = %v, want %q", fields, tt.field)
			}
		})
	}
}

func TestSetMessageStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewContactService(&mockContactStore{}, &mockQueue{}, testLogger())
	if err := svc.SetMessageStatus(context.Background(), uuid.New(), "spam"); err != ErrInvalidContactStatus {
		t.Errorf("SetMessageStatus() error = %v, want ErrInvalidContactStatus", err)
	}
}
