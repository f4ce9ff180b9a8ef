package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-system/internal/api/metrics"
	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// SupplierService implements supplier and invoice use cases. Supplier
// mutations carry an audit entry in the same transaction scope; invoice and
// line item writes do not (matching the audit contract, which covers
// inventory and suppliers only).
type SupplierService struct {
	suppliers ports.SupplierRepository
	invoices  ports.InvoiceRepository
	audit     ports.AuditRepository
	tx        ports.TxRunner
	logger    zerolog.Logger
}

func NewSupplierService(suppliers ports.SupplierRepository, invoices ports.InvoiceRepository, audit ports.AuditRepository, tx ports.TxRunner, logger zerolog.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, invoices: invoices, audit: audit, tx: tx, logger: logger}
}

func (s *SupplierService) List(ctx context.Context) ([]*domain.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *SupplierService) Create(ctx context.Context, userID string, input ports.SupplierInput) (*domain.Supplier, error) {
	existing, err := s.suppliers.FindByTaxID(ctx, input.TaxID)
	if err != nil && !errors.Is(err, domain.ErrSupplierNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSupplier
	}

	var created *domain.Supplier
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sup, err := s.suppliers.Create(ctx, &domain.Supplier{
			TaxID:   input.TaxID,
			Name:    input.Name,
			Address: input.Address,
			Phone:   input.Phone,
			Email:   input.Email,
		})
		if err != nil {
			return err
		}
		created = sup
		return s.audit.Append(ctx, auditEntry(userID, domain.ActionSupplierCreated, "", sup.ID,
			fmt.Sprintf("Supplier %q added.", sup.Name)))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("tax_id", input.TaxID).Msg("failed to create supplier")
		return nil, err
	}

	metrics.AuditEntriesTotal.WithLabelValues(domain.ActionSupplierCreated).Inc()
	s.logger.Info().Str("id", created.ID).Str("name", created.Name).Msg("supplier created")
	return created, nil
}

func (s *SupplierService) Update(ctx context.Context, userID, id string, input ports.SupplierInput) (*domain.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	other, err := s.suppliers.FindByTaxID(ctx, input.TaxID)
	if err != nil && !errors.Is(err, domain.ErrSupplierNotFound) {
		return nil, err
	}
	if other != nil && other.ID != sup.ID {
		return nil, domain.ErrDuplicateSupplier
	}

	sup.TaxID = input.TaxID
	sup.Name = input.Name
	sup.Address = input.Address
	sup.Phone = input.Phone
	sup.Email = input.Email

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.suppliers.Update(ctx, sup); err != nil {
			return err
		}
		return s.audit.Append(ctx, auditEntry(userID, domain.ActionSupplierUpdated, "", sup.ID,
			fmt.Sprintf("Supplier %q edited.", sup.Name)))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update supplier")
		return nil, err
	}

	metrics.AuditEntriesTotal.WithLabelValues(domain.ActionSupplierUpdated).Inc()
	return sup, nil
}

// Delete removes a supplier. The referential guard is enforced here, at the
// application level: a supplier with at least one invoice cannot be deleted.
func (s *SupplierService) Delete(ctx context.Context, userID, id string) error {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.invoices.CountBySupplier(ctx, sup.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrSupplierHasInvoices
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.suppliers.Delete(ctx, sup.ID); err != nil {
			return err
		}
		return s.audit.Append(ctx, auditEntry(userID, domain.ActionSupplierDeleted, "", sup.ID,
			fmt.Sprintf("Supplier %q deleted.", sup.Name)))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete supplier")
		return err
	}

	metrics.AuditEntriesTotal.WithLabelValues(domain.ActionSupplierDeleted).Inc()
	return nil
}

// --- Invoices ---

func (s *SupplierService) CreateInvoice(ctx context.Context, supplierID string, input ports.InvoiceInput) (*domain.Invoice, error) {
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}

	existing, err := s.invoices.FindByNumber(ctx, input.Number)
	if err != nil && !errors.Is(err, domain.ErrInvoiceNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateInvoice
	}

	return s.invoices.Create(ctx, &domain.Invoice{
		Number:       input.Number,
		IssueDate:    input.IssueDate,
		DeliveryDate: input.DeliveryDate,
		SupplierID:   supplierID,
	})
}

func (s *SupplierService) ListInvoices(ctx context.Context, supplierID string) ([]*domain.Invoice, error) {
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.invoices.ListBySupplier(ctx, supplierID)
}

func (s *SupplierService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, []*domain.InvoiceItem, error) {
	inv, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.invoices.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func (s *SupplierService) UpdateInvoice(ctx context.Context, invoiceID string, input ports.InvoiceInput) (*domain.Invoice, error) {
	inv, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if input.Number != inv.Number {
		other, err := s.invoices.FindByNumber(ctx, input.Number)
		if err != nil && !errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, err
		}
		if other != nil && other.ID != inv.ID {
			return nil, domain.ErrDuplicateInvoice
		}
	}

	inv.Number = input.Number
	inv.IssueDate = input.IssueDate
	inv.DeliveryDate = input.DeliveryDate
	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *SupplierService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if _, err := s.invoices.FindByID(ctx, invoiceID); err != nil {
		return err
	}
	return s.invoices.Delete(ctx, invoiceID)
}

func (s *SupplierService) AddInvoiceItem(ctx context.Context, invoiceID string, input ports.InvoiceItemInput) (*domain.InvoiceItem, error) {
	if _, err := s.invoices.FindByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.invoices.AddItem(ctx, &domain.InvoiceItem{
		InvoiceID:   invoiceID,
		Description: input.Description,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		Group:       input.Group,
	})
}

func (s *SupplierService) UpdateInvoiceItem(ctx context.Context, itemID string, input ports.InvoiceItemInput) (*domain.InvoiceItem, error) {
	item, err := s.invoices.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Description = input.Description
	item.Quantity = input.Quantity
	item.UnitPrice = input.UnitPrice
	if input.Group != "" {
		item.Group = input.Group
	}
	if err := s.invoices.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *SupplierService) DeleteInvoiceItem(ctx context.Context, itemID string) error {
	if _, err := s.invoices.FindItemByID(ctx, itemID); err != nil {
		return err
	}
	return s.invoices.DeleteItem(ctx, itemID)
}
