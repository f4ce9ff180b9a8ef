package ports

import (
	"context"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// AuditRepository appends and reads the immutable action log.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	// List returns all entries ordered by creation time descending.
	List(ctx context.Context) ([]*domain.AuditEntry, error)
}
