package service

import (
	"github.com/rolloffco/rolloff/internal/domain"
)

// Checkout errors - use domain.EINVALID
var (
	ErrCheckoutIncomplete = domain.Errorf(domain.EINVALID, "", "Checkout is not complete")
	ErrEmptyCart          = domain.Errorf(domain.EINVALID, "", "No dumpster selected")
)

// Admin validation errors
var (
	ErrInvalidTaxRate    = domain.Errorf(domain.EINVALID, "", "Local tax rate must be between 0 and 100 percent")
	ErrInvalidIdentifier = domain.Errorf(domain.EINVALID, "", "Dumpster identifier is required")
)

// Contact errors
var (
	ErrInvalidContactStatus = domain.Errorf(domain.EINVALID, "", "Invalid contact message status")
)
