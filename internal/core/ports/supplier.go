package ports

import (
	"context"
	"time"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// SupplierRepository defines persistence operations for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	FindByTaxID(ctx context.Context, taxID string) (*domain.Supplier, error)
	List(ctx context.Context) ([]*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository defines persistence operations for invoices and their
// line items.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	FindByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Invoice, error)
	CountBySupplier(ctx context.Context, supplierID string) (int64, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, item *domain.InvoiceItem) (*domain.InvoiceItem, error)
	FindItemByID(ctx context.Context, itemID string) (*domain.InvoiceItem, error)
	ListItems(ctx context.Context, invoiceID string) ([]*domain.InvoiceItem, error)
	UpdateItem(ctx context.Context, item *domain.InvoiceItem) error
	DeleteItem(ctx context.Context, itemID string) error
}

// SupplierInput carries the writable fields of a supplier.
type SupplierInput struct {
	TaxID   string
	Name    string
	Address string
	Phone   string
	Email   string
}

// InvoiceInput carries the writable fields of an invoice.
type InvoiceInput struct {
	Number       string
	IssueDate    time.Time
	DeliveryDate time.Time
}

// InvoiceItemInput carries the writable fields of an invoice line item.
type InvoiceItemInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Group       string
}

// SupplierService defines supplier and invoice use cases. UserID identifies
// the acting operator for the audit trail on supplier mutations.
type SupplierService interface {
	List(ctx context.Context) ([]*domain.Supplier, error)
	Create(ctx context.Context, userID string, input SupplierInput) (*domain.Supplier, error)
	Update(ctx context.Context, userID, id string, input SupplierInput) (*domain.Supplier, error)
	// Delete removes a supplier; it fails with domain.ErrSupplierHasInvoices
	// while any invoice references it.
	Delete(ctx context.Context, userID, id string) error

	CreateInvoice(ctx context.Context, supplierID string, input InvoiceInput) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, supplierID string) ([]*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, []*domain.InvoiceItem, error)
	UpdateInvoice(ctx context.Context, invoiceID string, input InvoiceInput) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error

	AddInvoiceItem(ctx context.Context, invoiceID string, input InvoiceItemInput) (*domain.InvoiceItem, error)
	UpdateInvoiceItem(ctx context.Context, itemID string, input InvoiceItemInput) (*domain.InvoiceItem, error)
	DeleteInvoiceItem(ctx context.Context, itemID string) error
}
