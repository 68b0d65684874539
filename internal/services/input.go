package services

import (
	"github.com/diewo77/invoice-api/internal/models"
	"github.com/shopspring/decimal"
)

// DetailInput is one incoming line item entry. Pointer fields make the
// omitted/supplied distinction explicit: nil means the client did not send
// the field, so the current value is kept on update.
type DetailInput struct {
	ID          *uint            `json:"id"`
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`

	// Price is accepted on the wire for compatibility but never trusted;
	// the stored value is always derived from quantity and unit price.
	Price *decimal.Decimal `json:"price"`
}

// InvoiceInput carries header fields plus the optional detail list for
// create and update requests. PUT and PATCH share this shape; both apply
// only the fields that were supplied.
type InvoiceInput struct {
	Date          *models.Date `json:"date"`
	InvoiceNumber *string      `json:"invoice_number"`
	CustomerName  *string      `json:"customer_name"`

	// A nil list means "no detail changes"; an empty list is a no-op too,
	// since reconciliation merges rather than replaces.
	InvoiceDetails *[]DetailInput `json:"invoice_details"`
}
