package email

import "time"

// EmailTemplate defines the interface for email templates
type EmailTemplate interface {
	Subject() string
	TemplateName() string
}

// OrderData is the shape both order notification emails render from: the
// rental joined with its customer and dumpster type.
type OrderData struct {
	RentalID        string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DumpsterName    string
	DeliveryAddress string
	DeliveryDate    time.Time

	DrivewayInsurance     bool
	CancellationInsurance bool
	RushDelivery          bool

	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	TaxRate       float64
}

// RentalConfirmationEmail is the customer receipt sent after a confirmed
// booking.
type RentalConfirmationEmail struct {
	OrderData
}

func (e RentalConfirmationEmail) Subject() string {
	return "Your Dumpster Rental is Confirmed"
}

func (e RentalConfirmationEmail) TemplateName() string {
	return "rental_confirmation.html"
}

// AdminOrderAlertEmail notifies dispatch of a new booking.
type AdminOrderAlertEmail struct {
	OrderData
}

func (e AdminOrderAlertEmail) Subject() string {
	return "New Rental Order - " + e.CustomerName
}

func (e AdminOrderAlertEmail) TemplateName() string {
	return "admin_order_alert.html"
}

// ContactNotificationEmail notifies dispatch of a contact-form submission.
type ContactNotificationEmail struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Topic     string
	Message   string
}

func (e ContactNotificationEmail) Subject() string {
	return "New Contact Message: " + e.Topic
}

func (e ContactNotificationEmail) TemplateName() string {
	return "contact_notification.html"
}
