package services

import (
	"fmt"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/internal/pricing"
	"github.com/diewo77/invoice-api/internal/store"
	"github.com/diewo77/invoice-api/validation"
)

// Plan is the outcome of reconciling incoming entries against an invoice's
// current details: records to insert and records to update in place.
// Existing details not referenced by any entry are absent from the plan and
// therefore untouched: reconciliation merges, it never replaces.
type Plan struct {
	Creates []models.InvoiceDetail
	Updates []models.InvoiceDetail
}

func (p Plan) Empty() bool { return len(p.Creates) == 0 && len(p.Updates) == 0 }

// Reconcile builds a persistence plan for incoming detail entries.
//
// Entries carrying an id target an existing detail of this invoice; an id
// that is unknown, or that belongs to another invoice, fails the whole
// reconciliation with store.ErrDetailNotFound. Supplied fields overlay the
// current record, omitted fields keep their values, and the price is
// re-derived either way.
//
// Entries without an id are creates and must supply description, quantity
// and unit_price. A create entry failing validation lands in the returned
// index-keyed error map and does not block its siblings.
func Reconcile(invoiceID uint, existing []models.InvoiceDetail, entries []DetailInput) (Plan, map[int]validation.FieldErrors, error) {
	byID := make(map[uint]models.InvoiceDetail, len(existing))
	for _, det := range existing {
		byID[det.ID] = det
	}

	var plan Plan
	entryErrs := make(map[int]validation.FieldErrors)
	for i, entry := range entries {
		if entry.ID != nil {
			current, ok := byID[*entry.ID]
			if !ok {
				return Plan{}, nil, fmt.Errorf("detail %d: %w", *entry.ID, store.ErrDetailNotFound)
			}
			applyEntry(&current, entry)
			current.Price = pricing.LineTotal(current.Quantity, current.UnitPrice)
			plan.Updates = append(plan.Updates, current)
			continue
		}

		fe := make(validation.FieldErrors)
		if entry.Description == nil {
			fe.Add("description", validation.MsgRequired)
		}
		if entry.Quantity == nil {
			fe.Add("quantity", validation.MsgRequired)
		}
		if entry.UnitPrice == nil {
			fe.Add("unit_price", validation.MsgRequired)
		}
		if !fe.Empty() {
			entryErrs[i] = fe
			continue
		}

		det := models.InvoiceDetail{
			InvoiceID:   invoiceID,
			Description: *entry.Description,
			Quantity:    *entry.Quantity,
			UnitPrice:   *entry.UnitPrice,
		}
		det.Price = pricing.LineTotal(det.Quantity, det.UnitPrice)
		plan.Creates = append(plan.Creates, det)
	}
	return plan, entryErrs, nil
}

func applyEntry(det *models.InvoiceDetail, entry DetailInput) {
	if entry.Description != nil {
		det.Description = *entry.Description
	}
	if entry.Quantity != nil {
		det.Quantity = *entry.Quantity
	}
	if entry.UnitPrice != nil {
		det.UnitPrice = *entry.UnitPrice
	}
}
