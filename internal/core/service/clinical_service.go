package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-system/internal/api/metrics"
	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// ClinicalService implements the odontogram, the procedure catalog, and
// treatment budgets.
type ClinicalService struct {
	odontogram ports.OdontogramRepository
	procedures ports.ProcedureRepository
	budgets    ports.BudgetRepository
	patients   ports.PatientRepository
	logger     zerolog.Logger
}

func NewClinicalService(odontogram ports.OdontogramRepository, procedures ports.ProcedureRepository, budgets ports.BudgetRepository, patients ports.PatientRepository, logger zerolog.Logger) *ClinicalService {
	return &ClinicalService{
		odontogram: odontogram,
		procedures: procedures,
		budgets:    budgets,
		patients:   patients,
		logger:     logger,
	}
}

// --- Odontogram ---

func (s *ClinicalService) Odontogram(ctx context.Context, patientID string) ([]*domain.OdontogramEntry, error) {
	if _, err := s.patients.FindByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.odontogram.ListByPatient(ctx, patientID)
}

func (s *ClinicalService) ToothRecord(ctx context.Context, patientID, tooth string) (*domain.OdontogramEntry, error) {
	return s.odontogram.FindByTooth(ctx, patientID, tooth)
}

func (s *ClinicalService) AddOdontogramEntry(ctx context.Context, patientID string, input ports.OdontogramEntryInput) (*domain.OdontogramEntry, error) {
	if _, err := s.patients.FindByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.odontogram.Create(ctx, &domain.OdontogramEntry{
		PatientID: patientID,
		Tooth:     input.Tooth,
		Status:    input.Status,
		Notes:     input.Notes,
	})
}

// UpdateOdontogramEntry overwrites the entry: last write wins.
func (s *ClinicalService) UpdateOdontogramEntry(ctx context.Context, id string, input ports.OdontogramEntryInput) (*domain.OdontogramEntry, error) {
	e, err := s.odontogram.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Tooth = input.Tooth
	e.Status = input.Status
	e.Notes = input.Notes
	if err := s.odontogram.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// --- Procedure catalog ---

func (s *ClinicalService) ListProcedures(ctx context.Context) ([]*domain.Procedure, error) {
	return s.procedures.List(ctx)
}

func (s *ClinicalService) CreateProcedure(ctx context.Context, input ports.ProcedureInput) (*domain.Procedure, error) {
	existing, err := s.procedures.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, domain.ErrProcedureNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateProcedure
	}
	return s.procedures.Create(ctx, &domain.Procedure{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
}

func (s *ClinicalService) UpdateProcedure(ctx context.Context, id string, input ports.ProcedureInput) (*domain.Procedure, error) {
	p, err := s.procedures.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != p.Name {
		other, err := s.procedures.FindByName(ctx, input.Name)
		if err != nil && !errors.Is(err, domain.ErrProcedureNotFound) {
			return nil, err
		}
		if other != nil && other.ID != p.ID {
			return nil, domain.ErrDuplicateProcedure
		}
	}
	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	if err := s.procedures.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ClinicalService) DeleteProcedure(ctx context.Context, id string) error {
	if _, err := s.procedures.FindByID(ctx, id); err != nil {
		return err
	}
	return s.procedures.Delete(ctx, id)
}

// --- Budget ---

func (s *ClinicalService) Budget(ctx context.Context, patientID string) ([]*domain.BudgetItem, error) {
	if _, err := s.patients.FindByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.budgets.ListByPatient(ctx, patientID)
}

// AddBudgetItem copies the procedure's catalog price into the line item at
// insertion time. Later catalog edits never touch the stored price.
func (s *ClinicalService) AddBudgetItem(ctx context.Context, patientID string, input ports.BudgetItemInput) (*domain.BudgetItem, error) {
	if _, err := s.patients.FindByID(ctx, patientID); err != nil {
		return nil, err
	}
	proc, err := s.procedures.FindByID(ctx, input.ProcedureID)
	if err != nil {
		return nil, err
	}

	item, err := s.budgets.Create(ctx, &domain.BudgetItem{
		PatientID:   patientID,
		Tooth:       input.Tooth,
		ProcedureID: proc.ID,
		Notes:       input.Notes,
		Price:       proc.Price,
	})
	if err != nil {
		return nil, err
	}

	metrics.BudgetItemsCreatedTotal.Inc()
	s.logger.Info().Str("patient_id", patientID).Str("tooth", item.Tooth).Float64("price", item.Price).Msg("budget item added")
	return item, nil
}

// UpdateBudgetItem changes tooth, procedure reference, and notes. The stored
// price stays as quoted even when the procedure reference changes, keeping
// historical budgets immune to catalog drift.
func (s *ClinicalService) UpdateBudgetItem(ctx context.Context, id string, input ports.BudgetItemInput) (*domain.BudgetItem, error) {
	item, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ProcedureID != "" && input.ProcedureID != item.ProcedureID {
		if _, err := s.procedures.FindByID(ctx, input.ProcedureID); err != nil {
			return nil, err
		}
		item.ProcedureID = input.ProcedureID
	}
	item.Tooth = input.Tooth
	item.Notes = input.Notes
	if err := s.budgets.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ClinicalService) DeleteBudgetItem(ctx context.Context, id string) error {
	if _, err := s.budgets.FindByID(ctx, id); err != nil {
		return err
	}
	return s.budgets.Delete(ctx, id)
}
