package handlers

import (
	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/validation"
)

// detailRepr is the wire form of a line item. Monetary fields are rendered
// as fixed-point strings with exactly two fractional digits.
type detailRepr struct {
	ID          uint   `json:"id"`
	Invoice     uint   `json:"invoice"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Price       string `json:"price"`
}

type invoiceRepr struct {
	ID             uint         `json:"id"`
	Date           models.Date  `json:"date"`
	InvoiceNumber  string       `json:"invoice_number"`
	CustomerName   string       `json:"customer_name"`
	InvoiceDetails []detailRepr `json:"invoice_details"`

	// DetailErrors reports submitted entries that failed validation while
	// their siblings were persisted, keyed by position in the submitted
	// list. Omitted when every entry succeeded.
	DetailErrors map[int]validation.FieldErrors `json:"detail_errors,omitempty"`
}

func newInvoiceRepr(inv *models.Invoice, entryErrs map[int]validation.FieldErrors) invoiceRepr {
	details := make([]detailRepr, 0, len(inv.InvoiceDetails))
	for _, det := range inv.InvoiceDetails {
		details = append(details, detailRepr{
			ID:          det.ID,
			Invoice:     det.InvoiceID,
			Description: det.Description,
			Quantity:    det.Quantity,
			UnitPrice:   det.UnitPrice.StringFixed(2),
			Price:       det.Price.StringFixed(2),
		})
	}
	if len(entryErrs) == 0 {
		entryErrs = nil
	}
	return invoiceRepr{
		ID:             inv.ID,
		Date:           inv.Date,
		InvoiceNumber:  inv.InvoiceNumber,
		CustomerName:   inv.CustomerName,
		InvoiceDetails: details,
		DetailErrors:   entryErrs,
	}
}
