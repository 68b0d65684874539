package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an invoice header owning zero or more line items. Deleting an
// invoice deletes all of its details.
type Invoice struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Date          Date   `gorm:"type:date;not null" json:"date"`
	InvoiceNumber string `gorm:"size:100;uniqueIndex;not null" json:"invoice_number"`
	CustomerName  string `gorm:"size:255;not null" json:"customer_name"`

	InvoiceDetails []InvoiceDetail `gorm:"foreignKey:InvoiceID" json:"invoice_details"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// InvoiceDetail is a single line item. Price is always derived as
// quantity * unit_price on write; client-supplied values never reach storage.
type InvoiceDetail struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InvoiceID   uint            `gorm:"index;not null" json:"invoice"`
	Description string          `gorm:"type:text" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
