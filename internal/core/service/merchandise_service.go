package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-system/internal/api/metrics"
	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// MerchandiseService implements inventory use cases. Every mutation appends
// one audit entry inside the same transaction scope: when the mutation fails,
// no entry is written.
type MerchandiseService struct {
	repo   ports.MerchandiseRepository
	audit  ports.AuditRepository
	tx     ports.TxRunner
	logger zerolog.Logger
}

func NewMerchandiseService(repo ports.MerchandiseRepository, audit ports.AuditRepository, tx ports.TxRunner, logger zerolog.Logger) *MerchandiseService {
	return &MerchandiseService{repo: repo, audit: audit, tx: tx, logger: logger}
}

func (s *MerchandiseService) List(ctx context.Context) ([]*domain.Merchandise, error) {
	return s.repo.List(ctx)
}

func (s *MerchandiseService) Search(ctx context.Context, query string) ([]*domain.Merchandise, error) {
	return s.repo.Search(ctx, strings.TrimSpace(strings.ToLower(query)))
}

func (s *MerchandiseService) Create(ctx context.Context, userID string, input ports.MerchandiseInput) (*domain.Merchandise, error) {
	name := canonicalName(input.Name)

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrMerchandiseNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateMerchandise
	}

	var created *domain.Merchandise
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := s.repo.Create(ctx, &domain.Merchandise{
			Name:        name,
			Quantity:    input.Quantity,
			Description: input.Description,
			Price:       input.Price,
		})
		if err != nil {
			return err
		}
		created = m
		return s.audit.Append(ctx, auditEntry(userID, domain.ActionMerchandiseCreated, m.ID, "",
			fmt.Sprintf("Merchandise %q added with quantity %d.", m.Name, m.Quantity)))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create merchandise")
		return nil, err
	}

	metrics.AuditEntriesTotal.WithLabelValues(domain.ActionMerchandiseCreated).Inc()
	s.logger.Info().Str("id", created.ID).Str("name", created.Name).Msg("merchandise created")
	return created, nil
}

func (s *MerchandiseService) Update(ctx context.Context, userID, id string, input ports.MerchandiseInput) (*domain.Merchandise, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := canonicalName(input.Name)
	if name != m.Name {
		other, err := s.repo.FindByName(ctx, name)
		if err != nil && !errors.Is(err, domain.ErrMerchandiseNotFound) {
			return nil, err
		}
		if other != nil && other.ID != m.ID {
			return nil, domain.ErrDuplicateMerchandise
		}
	}

	m.Name = name
	m.Quantity = input.Quantity
	m.Description = input.Description
	m.Price = input.Price

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, m); err != nil {
			return err
		}
		return s.audit.Append(ctx, auditEntry(userID, domain.ActionMerchandiseUpdated, m.ID, "",
			fmt.Sprintf("Merchandise %q edited. Quantity: %d.", m.Name, m.Quantity)))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update merchandise")
		return nil, err
	}

	metrics.AuditEntriesTotal.WithLabelValues(domain.ActionMerchandiseUpdated).Inc()
	return m, nil
}

func (s *MerchandiseService) Delete(ctx context.Context, userID, id string) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, m.ID); err != nil {
			return err
		}
		return s.audit.Append(ctx, auditEntry(userID, domain.ActionMerchandiseDeleted, m.ID, "",
			fmt.Sprintf("Merchandise %q deleted.", m.Name)))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete merchandise")
		return err
	}

	metrics.AuditEntriesTotal.WithLabelValues(domain.ActionMerchandiseDeleted).Inc()
	return nil
}

// canonicalName is the stored form of a merchandise name; the unique check is
// case-insensitive because of it.
func canonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func auditEntry(userID, action, merchandiseID, supplierID, description string) *domain.AuditEntry {
	return &domain.AuditEntry{
		UserID:        userID,
		Action:        action,
		MerchandiseID: merchandiseID,
		SupplierID:    supplierID,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
}
