package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// AuditRepository is append-only: there is no update or delete path, matching
// the immutability contract of the log.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditLog)}
}

type auditDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id,omitempty"`
	Action        string             `bson:"action"`
	MerchandiseID string             `bson:"merchandise_id,omitempty"`
	SupplierID    string             `bson:"supplier_id,omitempty"`
	Description   string             `bson:"description"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d auditDoc) toDomain() *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		Action:        d.Action,
		MerchandiseID: d.MerchandiseID,
		SupplierID:    d.SupplierID,
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
	}
}

func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, auditDoc{
		UserID:        entry.UserID,
		Action:        entry.Action,
		MerchandiseID: entry.MerchandiseID,
		SupplierID:    entry.SupplierID,
		Description:   entry.Description,
		CreatedAt:     entry.CreatedAt,
	})
	return err
}

// List returns every entry, newest first — the canonical read order.
func (r *AuditRepository) List(ctx context.Context) ([]*domain.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.AuditEntry
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}
