// Package store owns persistence of invoices and their details.
package store

import (
	"errors"

	"github.com/diewo77/invoice-api/internal/models"
	"github.com/diewo77/invoice-api/internal/pricing"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Transaction runs fn against a transactional view of the store. Any error
// from fn rolls the whole transaction back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// CreateInvoice persists a new header. The uniqueness pre-check gives a
// deterministic error across drivers; the DB unique index remains the
// backstop for concurrent writers.
func (s *Store) CreateInvoice(inv *models.Invoice) error {
	taken, err := s.numberTaken(inv.InvoiceNumber, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateInvoiceNumber
	}
	return s.db.Create(inv).Error
}

// GetInvoice loads a header with its details, ordered by id.
func (s *Store) GetInvoice(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Preload("InvoiceDetails", detailOrder).First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	if inv.InvoiceDetails == nil {
		inv.InvoiceDetails = []models.InvoiceDetail{}
	}
	return &inv, nil
}

// ListInvoices returns all invoices in insertion order with details loaded.
func (s *Store) ListInvoices() ([]models.Invoice, error) {
	invs := []models.Invoice{}
	if err := s.db.Preload("InvoiceDetails", detailOrder).Order("id").Find(&invs).Error; err != nil {
		return nil, err
	}
	for i := range invs {
		if invs[i].InvoiceDetails == nil {
			invs[i].InvoiceDetails = []models.InvoiceDetail{}
		}
	}
	return invs, nil
}

// UpdateInvoice persists header changes for an already-loaded invoice,
// re-checking number uniqueness against other invoices.
func (s *Store) UpdateInvoice(inv *models.Invoice) error {
	taken, err := s.numberTaken(inv.InvoiceNumber, inv.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateInvoiceNumber
	}
	return s.db.Model(inv).Select("date", "invoice_number", "customer_name").Updates(inv).Error
}

// DeleteInvoice removes a header and all of its details in one transaction.
func (s *Store) DeleteInvoice(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
}

// CreateDetail persists a new line item, deriving its price first.
func (s *Store) CreateDetail(det *models.InvoiceDetail) error {
	det.Price = pricing.LineTotal(det.Quantity, det.UnitPrice)
	return s.db.Create(det).Error
}

// UpdateDetail persists field changes on an existing line item, re-deriving
// the price from the current quantity and unit price.
func (s *Store) UpdateDetail(det *models.InvoiceDetail) error {
	det.Price = pricing.LineTotal(det.Quantity, det.UnitPrice)
	return s.db.Model(det).Select("description", "quantity", "unit_price", "price").Updates(det).Error
}

// GetDetail looks a line item up scoped to its owning invoice.
func (s *Store) GetDetail(invoiceID, id uint) (*models.InvoiceDetail, error) {
	var det models.InvoiceDetail
	err := s.db.Where("invoice_id = ?", invoiceID).First(&det, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDetailNotFound
	}
	if err != nil {
		return nil, err
	}
	return &det, nil
}

// ListDetails returns an invoice's line items ordered by id.
func (s *Store) ListDetails(invoiceID uint) ([]models.InvoiceDetail, error) {
	dets := []models.InvoiceDetail{}
	err := s.db.Where("invoice_id = ?", invoiceID).Order("id").Find(&dets).Error
	return dets, err
}

func (s *Store) numberTaken(number string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.Model(&models.Invoice{}).Where("invoice_number = ?", number)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func detailOrder(db *gorm.DB) *gorm.DB { return db.Order("id") }
