package domain

import "errors"

var (
	ErrNotFound            = errors.New("invoice_not_found")
	ErrNumberConflict      = errors.New("invoice_number_conflict")
	ErrClientNotFound      = errors.New("client_not_found")
	ErrProfileNotFound     = errors.New("business_profile_not_found")
	ErrInvalidInvoiceID    = errors.New("invalid_invoice_id")
	ErrInvalidClientID     = errors.New("invalid_client_id")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidPaymentTerms = errors.New("invalid_payment_terms")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
	ErrInvalidDiscount     = errors.New("invalid_discount")
	ErrNoLineItems         = errors.New("invoice_has_no_line_items")
	ErrTotalsMismatch      = errors.New("invoice_totals_mismatch")
	ErrInvalidPayment      = errors.New("invalid_payment_amount")
)
