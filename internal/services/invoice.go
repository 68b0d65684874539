package services

import (
	"errors"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/internal/store"
	"github.com/diewo77/invoice-api/validation"
)

// InvoiceService orchestrates header persistence and detail reconciliation
// for the create, update and delete request shapes. Every mutating request
// runs in a single transaction spanning the header and all detail writes;
// entry-level validation failures are filtered out before any write happens,
// so they never roll back valid sibling entries.
type InvoiceService struct {
	store *store.Store
}

func NewInvoiceService(st *store.Store) *InvoiceService {
	return &InvoiceService{store: st}
}

const msgDuplicateNumber = "invoice with this invoice number already exists."

// Create validates and persists a new invoice header, then creates the
// supplied details under it. Ids on detail entries are ignored: a
// not-yet-existing invoice has nothing to target.
func (s *InvoiceService) Create(in InvoiceInput) (*models.Invoice, map[int]validation.FieldErrors, error) {
	fe := make(validation.FieldErrors)
	if in.Date == nil {
		fe.Add("date", validation.MsgRequired)
	}
	if in.InvoiceNumber == nil {
		fe.Add("invoice_number", validation.MsgRequired)
	} else {
		validation.NotBlank("invoice_number", *in.InvoiceNumber, fe)
	}
	if in.CustomerName == nil {
		fe.Add("customer_name", validation.MsgRequired)
	} else {
		validation.NotBlank("customer_name", *in.CustomerName, fe)
	}
	if !fe.Empty() {
		return nil, nil, validation.NewError(fe)
	}

	entries := detailEntries(in)
	for i := range entries {
		entries[i].ID = nil
	}

	inv := &models.Invoice{
		Date:          *in.Date,
		InvoiceNumber: *in.InvoiceNumber,
		CustomerName:  *in.CustomerName,
	}
	var entryErrs map[int]validation.FieldErrors
	err := s.store.Transaction(func(tx *store.Store) error {
		if err := tx.CreateInvoice(inv); err != nil {
			return err
		}
		plan, errs, err := Reconcile(inv.ID, nil, entries)
		if err != nil {
			return err
		}
		entryErrs = errs
		return applyPlan(tx, plan)
	})
	if err != nil {
		return nil, nil, classify(err)
	}
	out, err := s.store.GetInvoice(inv.ID)
	return out, entryErrs, err
}

// Update applies supplied header fields and reconciles the detail list
// against the invoice's current details. PUT and PATCH both land here; the
// pointer-presence input semantics make full and partial updates converge.
func (s *InvoiceService) Update(id uint, in InvoiceInput) (*models.Invoice, map[int]validation.FieldErrors, error) {
	var entryErrs map[int]validation.FieldErrors
	err := s.store.Transaction(func(tx *store.Store) error {
		inv, err := tx.GetInvoice(id)
		if err != nil {
			return err
		}
		applyHeader(inv, in)

		fe := make(validation.FieldErrors)
		validation.NotBlank("invoice_number", inv.InvoiceNumber, fe)
		validation.NotBlank("customer_name", inv.CustomerName, fe)
		if !fe.Empty() {
			return validation.NewError(fe)
		}
		if err := tx.UpdateInvoice(inv); err != nil {
			return err
		}

		if in.InvoiceDetails == nil {
			return nil
		}
		plan, errs, err := Reconcile(inv.ID, inv.InvoiceDetails, *in.InvoiceDetails)
		if err != nil {
			return err
		}
		entryErrs = errs
		return applyPlan(tx, plan)
	})
	if err != nil {
		return nil, nil, classify(err)
	}
	out, err := s.store.GetInvoice(id)
	return out, entryErrs, err
}

func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	return s.store.GetInvoice(id)
}

func (s *InvoiceService) List() ([]models.Invoice, error) {
	return s.store.ListInvoices()
}

func (s *InvoiceService) Delete(id uint) error {
	return s.store.DeleteInvoice(id)
}

func detailEntries(in InvoiceInput) []DetailInput {
	if in.InvoiceDetails == nil {
		return nil
	}
	entries := make([]DetailInput, len(*in.InvoiceDetails))
	copy(entries, *in.InvoiceDetails)
	return entries
}

func applyHeader(inv *models.Invoice, in InvoiceInput) {
	if in.Date != nil {
		inv.Date = *in.Date
	}
	if in.InvoiceNumber != nil {
		inv.InvoiceNumber = *in.InvoiceNumber
	}
	if in.CustomerName != nil {
		inv.CustomerName = *in.CustomerName
	}
}

func applyPlan(tx *store.Store, plan Plan) error {
	for i := range plan.Updates {
		if err := tx.UpdateDetail(&plan.Updates[i]); err != nil {
			return err
		}
	}
	for i := range plan.Creates {
		if err := tx.CreateDetail(&plan.Creates[i]); err != nil {
			return err
		}
	}
	return nil
}

// classify rewrites the store's uniqueness error into the field error the
// API reports for it; everything else passes through.
func classify(err error) error {
	if errors.Is(err, store.ErrDuplicateInvoiceNumber) {
		fe := make(validation.FieldErrors)
		fe.Add("invoice_number", msgDuplicateNumber)
		return validation.NewError(fe)
	}
	return err
}
