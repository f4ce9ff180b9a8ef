package domain

import (
	"errors"
	"time"
)

var ErrSupplierNotFound = errors.New("supplier not found")
var ErrDuplicateSupplier = errors.New("supplier tax id already exists")

// ErrSupplierHasInvoices blocks supplier deletion while invoices reference it.
var ErrSupplierHasInvoices = errors.New("supplier has invoices and cannot be deleted")

var ErrInvoiceNotFound = errors.New("invoice not found")
var ErrDuplicateInvoice = errors.New("invoice number already exists")
var ErrInvoiceItemNotFound = errors.New("invoice item not found")

// Supplier is a merchandise provider identified by its tax id (CNPJ).
type Supplier struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	TaxID   string `json:"tax_id" bson:"tax_id"`
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email" bson:"email"`
}

// Invoice (nota fiscal) belongs to exactly one supplier.
type Invoice struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Number       string    `json:"number" bson:"number"`
	IssueDate    time.Time `json:"issue_date" bson:"issue_date"`
	DeliveryDate time.Time `json:"delivery_date" bson:"delivery_date"`
	SupplierID   string    `json:"supplier_id" bson:"supplier_id"`
}

// InvoiceItem is a single line on an invoice. Group is an optional tag used
// to bucket purchased goods.
type InvoiceItem struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	InvoiceID   string  `json:"invoice_id" bson:"invoice_id"`
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Group       string  `json:"group,omitempty" bson:"group,omitempty"`
}
