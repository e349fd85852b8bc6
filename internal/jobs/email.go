package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/email"
	"github.com/rolloffco/rolloff/internal/postgres"
)

// Job type constants for email jobs
const (
	JobTypeRentalConfirmation  = "email:rental_confirmation"
	JobTypeAdminOrderAlert     = "email:admin_order_alert"
	JobTypeContactNotification = "email:contact_notification"
)

// EmailQueue is the queue all notification emails run on.
const EmailQueue = "email"

// Queue is the enqueue side of the job store. Satisfied by
// *postgres.JobRepo.
type Queue interface {
	Enqueue(ctx context.Context, p postgres.EnqueueParams) (*domain.Job, error)
}

// Email job payloads (JSON-serializable)

// OrderEmailPayload carries everything the order notification emails render
// from, so processing never needs to re-read the rental.
type OrderEmailPayload struct {
	RentalID        string    `json:"rental_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	DumpsterName    string    `json:"dumpster_name"`
	DeliveryAddress string    `json:"delivery_address"`
	DeliveryDate    time.Time `json:"delivery_date"`

	DrivewayInsurance     bool `json:"driveway_insurance"`
	CancellationInsurance bool `json:"cancellation_insurance"`
	RushDelivery          bool `json:"rush_delivery"`

	SubtotalCents int64   `json:"subtotal_cents"`
	TaxCents      int64   `json:"tax_cents"`
	TotalCents    int64   `json:"total_cents"`
	TaxRate       float64 `json:"tax_rate"`
}

// ContactNotificationPayload carries a contact-form submission to the admin
// notification email.
type ContactNotificationPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// Job enqueueing functions

// EnqueueRentalConfirmationEmail enqueues the customer receipt email.
func EnqueueRentalConfirmationEmail(ctx context.Context, q Queue, payload OrderEmailPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.Enqueue(ctx, postgres.EnqueueParams{
		JobType:        JobTypeRentalConfirmation,
		Queue:          EmailQueue,
		Payload:        payloadJSON,
		MaxRetries:     3,
		TimeoutSeconds: 30,
	})
	return err
}

// EnqueueAdminOrderAlertEmail enqueues the dispatch notification email.
func EnqueueAdminOrderAlertEmail(ctx context.Context, q Queue, payload OrderEmailPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.Enqueue(ctx, postgres.EnqueueParams{
		JobType:        JobTypeAdminOrderAlert,
		Queue:          EmailQueue,
		Payload:        payloadJSON,
		MaxRetries:     3,
		TimeoutSeconds: 30,
	})
	return err
}

// EnqueueContactNotificationEmail enqueues the contact-form notification.
func EnqueueContactNotificationEmail(ctx context.Context, q Queue, payload ContactNotificationPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = q.Enqueue(ctx, postgres.EnqueueParams{
		JobType:        JobTypeContactNotification,
		Queue:          EmailQueue,
		Payload:        payloadJSON,
		MaxRetries:     3,
		TimeoutSeconds: 30,
	})
	return err
}

// IsEmailJob reports whether a job type belongs to this package.
func IsEmailJob(jobType string) bool {
	switch jobType {
	case JobTypeRentalConfirmation, JobTypeAdminOrderAlert, JobTypeContactNotification:
		return true
	}
	return false
}

func orderDataFromPayload(p OrderEmailPayload) email.OrderData {
	return email.OrderData{
		RentalID:              p.RentalID,
		CustomerName:          p.CustomerName,
		CustomerEmail:         p.CustomerEmail,
		CustomerPhone:         p.CustomerPhone,
		DumpsterName:          p.DumpsterName,
		DeliveryAddress:       p.DeliveryAddress,
		DeliveryDate:          p.DeliveryDate,
		DrivewayInsurance:     p.DrivewayInsurance,
		CancellationInsurance: p.CancellationInsurance,
		RushDelivery:          p.RushDelivery,
		SubtotalCents:         p.SubtotalCents,
		TaxCents:              p.TaxCents,
		TotalCents:            p.TotalCents,
		TaxRate:               p.TaxRate,
	}
}

// ProcessEmailJob processes an email job based on its type
func ProcessEmailJob(ctx context.Context, job *domain.Job, emailService *email.Service) error {
	switch job.JobType {
	case JobTypeRentalConfirmation:
		var payload OrderEmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal rental confirmation payload: %w", err)
		}
		return emailService.SendRentalConfirmation(ctx, email.RentalConfirmationEmail{
			OrderData: orderDataFromPayload(payload),
		})

	case JobTypeAdminOrderAlert:
		var payload OrderEmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal admin order alert payload: %w", err)
		}
		return emailService.SendAdminOrderAlert(ctx, email.AdminOrderAlertEmail{
			OrderData: orderDataFromPayload(payload),
		})

	case JobTypeContactNotification:
		var payload ContactNotificationPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal contact notification payload: %w", err)
		}
		return emailService.SendContactNotification(ctx, email.ContactNotificationEmail{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Topic:     payload.Subject,
			Message:   payload.Message,
		})

	default:
		return fmt.Errorf("unknown job type: %s", job.JobType)
	}
}
