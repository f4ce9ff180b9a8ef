package ports

import (
	"context"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// OdontogramRepository defines persistence operations for per-tooth records.
type OdontogramRepository interface {
	Create(ctx context.Context, e *domain.OdontogramEntry) (*domain.OdontogramEntry, error)
	FindByID(ctx context.Context, id string) (*domain.OdontogramEntry, error)
	// FindByTooth returns the first entry for (patient, tooth), or
	// domain.ErrOdontogramEntryNotFound.
	FindByTooth(ctx context.Context, patientID, tooth string) (*domain.OdontogramEntry, error)
	ListByPatient(ctx context.Context, patientID string) ([]*domain.OdontogramEntry, error)
	Update(ctx context.Context, e *domain.OdontogramEntry) error
}

// ProcedureRepository defines persistence operations for the price catalog.
type ProcedureRepository interface {
	Create(ctx context.Context, p *domain.Procedure) (*domain.Procedure, error)
	FindByID(ctx context.Context, id string) (*domain.Procedure, error)
	FindByName(ctx context.Context, name string) (*domain.Procedure, error)
	List(ctx context.Context) ([]*domain.Procedure, error)
	Update(ctx context.Context, p *domain.Procedure) error
	Delete(ctx context.Context, id string) error
}

// BudgetRepository defines persistence operations for budget line items.
type BudgetRepository interface {
	Create(ctx context.Context, item *domain.BudgetItem) (*domain.BudgetItem, error)
	FindByID(ctx context.Context, id string) (*domain.BudgetItem, error)
	// ListByPatient returns items in natural insertion order.
	ListByPatient(ctx context.Context, patientID string) ([]*domain.BudgetItem, error)
	Update(ctx context.Context, item *domain.BudgetItem) error
	Delete(ctx context.Context, id string) error
}

// OdontogramEntryInput carries the writable fields of an odontogram entry.
type OdontogramEntryInput struct {
	Tooth  string
	Status string
	Notes  string
}

// ProcedureInput carries the writable fields of a catalog procedure.
type ProcedureInput struct {
	Name        string
	Description string
	Price       float64
}

// BudgetItemInput carries the writable fields of a budget line item. Price is
// intentionally absent: it is snapshotted from the referenced procedure.
type BudgetItemInput struct {
	Tooth       string
	ProcedureID string
	Notes       string
}

// ClinicalService defines odontogram, procedure catalog, and budget use cases.
type ClinicalService interface {
	Odontogram(ctx context.Context, patientID string) ([]*domain.OdontogramEntry, error)
	ToothRecord(ctx context.Context, patientID, tooth string) (*domain.OdontogramEntry, error)
	AddOdontogramEntry(ctx context.Context, patientID string, input OdontogramEntryInput) (*domain.OdontogramEntry, error)
	UpdateOdontogramEntry(ctx context.Context, id string, input OdontogramEntryInput) (*domain.OdontogramEntry, error)

	ListProcedures(ctx context.Context) ([]*domain.Procedure, error)
	CreateProcedure(ctx context.Context, input ProcedureInput) (*domain.Procedure, error)
	UpdateProcedure(ctx context.Context, id string, input ProcedureInput) (*domain.Procedure, error)
	DeleteProcedure(ctx context.Context, id string) error

	Budget(ctx context.Context, patientID string) ([]*domain.BudgetItem, error)
	// AddBudgetItem snapshots the procedure's current catalog price into the
	// new line item.
	AddBudgetItem(ctx context.Context, patientID string, input BudgetItemInput) (*domain.BudgetItem, error)
	// UpdateBudgetItem may change tooth, procedure reference, and notes; the
	// stored price is never recomputed.
	UpdateBudgetItem(ctx context.Context, id string, input BudgetItemInput) (*domain.BudgetItem, error)
	DeleteBudgetItem(ctx context.Context, id string) error
}
