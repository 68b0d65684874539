package store

import "errors"

var (
	// ErrInvoiceNotFound is returned when no invoice exists for an id.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrDetailNotFound is returned when a detail id is unknown or belongs
	// to a different invoice; the two cases are deliberately
	// indistinguishable.
	ErrDetailNotFound = errors.New("invoice detail not found")

	// ErrDuplicateInvoiceNumber is returned when an invoice number is
	// already taken by another invoice.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already in use")
)
