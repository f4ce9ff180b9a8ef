package ports

import (
	"context"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// MerchandiseRepository defines persistence operations for stock items.
type MerchandiseRepository interface {
	Create(ctx context.Context, m *domain.Merchandise) (*domain.Merchandise, error)
	FindByID(ctx context.Context, id string) (*domain.Merchandise, error)
	// FindByName matches the canonical (lowercased) name exactly.
	FindByName(ctx context.Context, name string) (*domain.Merchandise, error)
	List(ctx context.Context) ([]*domain.Merchandise, error)
	// Search returns items whose name contains the query, case-insensitively.
	Search(ctx context.Context, query string) ([]*domain.Merchandise, error)
	Update(ctx context.Context, m *domain.Merchandise) error
	Delete(ctx context.Context, id string) error
}

// MerchandiseInput carries the writable fields of a stock item.
type MerchandiseInput struct {
	Name        string
	Quantity    int
	Description string
	Price       float64
}

// MerchandiseService defines inventory use cases. UserID identifies the
// acting operator for the audit trail.
type MerchandiseService interface {
	List(ctx context.Context) ([]*domain.Merchandise, error)
	Search(ctx context.Context, query string) ([]*domain.Merchandise, error)
	Create(ctx context.Context, userID string, input MerchandiseInput) (*domain.Merchandise, error)
	Update(ctx context.Context, userID, id string, input MerchandiseInput) (*domain.Merchandise, error)
	Delete(ctx context.Context, userID, id string) error
}
