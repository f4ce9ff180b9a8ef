package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

type SupplierRepository struct {
	col *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{col: db.Collection(collectionSuppliers)}
}

type supplierDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	TaxID   string             `bson:"tax_id"`
	Name    string             `bson:"name"`
	Address string             `bson:"address"`
	Phone   string             `bson:"phone"`
	Email   string             `bson:"email"`
}

func (d supplierDoc) toDomain() *domain.Supplier {
	return &domain.Supplier{
		ID:      d.ID.Hex(),
		TaxID:   d.TaxID,
		Name:    d.Name,
		Address: d.Address,
		Phone:   d.Phone,
		Email:   d.Email,
	}
}

func (r *SupplierRepository) Create(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, supplierDoc{
		TaxID:   s.TaxID,
		Name:    s.Name,
		Address: s.Address,
		Phone:   s.Phone,
		Email:   s.Email,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSupplier
		}
		return nil, err
	}

	out := *s
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *SupplierRepository) FindByTaxID(ctx context.Context, taxID string) (*domain.Supplier, error) {
	return r.findOne(ctx, bson.M{"tax_id": taxID})
}

func (r *SupplierRepository) findOne(ctx context.Context, filter bson.M) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc supplierDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Supplier
	for cur.Next(ctx) {
		var doc supplierDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *SupplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	oid, ok := objectID(s.ID)
	if !ok {
		return domain.ErrSupplierNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"tax_id":  s.TaxID,
		"name":    s.Name,
		"address": s.Address,
		"phone":   s.Phone,
		"email":   s.Email,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSupplier
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrSupplierNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}
