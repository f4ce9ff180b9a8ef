package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

type MerchandiseRepository struct {
	col *mongo.Collection
}

func NewMerchandiseRepository(db *mongo.Database) *MerchandiseRepository {
	return &MerchandiseRepository{col: db.Collection(collectionMerchandise)}
}

type merchandiseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Quantity    int                `bson:"quantity"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
}

func (d merchandiseDoc) toDomain() *domain.Merchandise {
	return &domain.Merchandise{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Quantity:    d.Quantity,
		Description: d.Description,
		Price:       d.Price,
	}
}

func (r *MerchandiseRepository) Create(ctx context.Context, m *domain.Merchandise) (*domain.Merchandise, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := merchandiseDoc{
		Name:        m.Name,
		Quantity:    m.Quantity,
		Description: m.Description,
		Price:       m.Price,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateMerchandise
		}
		return nil, err
	}

	out := *m
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *MerchandiseRepository) FindByID(ctx context.Context, id string) (*domain.Merchandise, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMerchandiseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc merchandiseDoc
	err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMerchandiseNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MerchandiseRepository) FindByName(ctx context.Context, name string) (*domain.Merchandise, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc merchandiseDoc
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMerchandiseNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MerchandiseRepository) List(ctx context.Context) ([]*domain.Merchandise, error) {
	return r.find(ctx, bson.M{})
}

// Search matches the query as a case-insensitive substring of the name,
// mirroring the inventory search box contract.
func (r *MerchandiseRepository) Search(ctx context.Context, query string) ([]*domain.Merchandise, error) {
	filter := bson.M{}
	if query != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	}
	return r.find(ctx, filter)
}

func (r *MerchandiseRepository) find(ctx context.Context, filter bson.M) ([]*domain.Merchandise, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Merchandise
	for cur.Next(ctx) {
		var doc merchandiseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *MerchandiseRepository) Update(ctx context.Context, m *domain.Merchandise) error {
	oid, ok := objectID(m.ID)
	if !ok {
		return domain.ErrMerchandiseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        m.Name,
		"quantity":    m.Quantity,
		"description": m.Description,
		"price":       m.Price,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateMerchandise
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMerchandiseNotFound
	}
	return nil
}

func (r *MerchandiseRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrMerchandiseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMerchandiseNotFound
	}
	return nil
}
