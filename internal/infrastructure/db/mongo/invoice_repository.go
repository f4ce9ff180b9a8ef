package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// InvoiceRepository stores invoices and their line items in two collections
// linked by invoice_id.
type InvoiceRepository struct {
	invoices *mongo.Collection
	items    *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{
		invoices: db.Collection(collectionInvoices),
		items:    db.Collection(collectionInvoiceItems),
	}
}

type invoiceDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Number       string             `bson:"number"`
	IssueDate    time.Time          `bson:"issue_date"`
	DeliveryDate time.Time          `bson:"delivery_date"`
	SupplierID   primitive.ObjectID `bson:"supplier_id"`
}

func (d invoiceDoc) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:           d.ID.Hex(),
		Number:       d.Number,
		IssueDate:    d.IssueDate,
		DeliveryDate: d.DeliveryDate,
		SupplierID:   d.SupplierID.Hex(),
	}
}

type invoiceItemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	InvoiceID   primitive.ObjectID `bson:"invoice_id"`
	Description string             `bson:"description"`
	Quantity    int                `bson:"quantity"`
	UnitPrice   float64            `bson:"unit_price"`
	Group       string             `bson:"group,omitempty"`
}

func (d invoiceItemDoc) toDomain() *domain.InvoiceItem {
	return &domain.InvoiceItem{
		ID:          d.ID.Hex(),
		InvoiceID:   d.InvoiceID.Hex(),
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Group:       d.Group,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	supplierOID, ok := objectID(inv.SupplierID)
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.invoices.InsertOne(ctx, invoiceDoc{
		Number:       inv.Number,
		IssueDate:    inv.IssueDate,
		DeliveryDate: inv.DeliveryDate,
		SupplierID:   supplierOID,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateInvoice
		}
		return nil, err
	}

	out := *inv
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *InvoiceRepository) FindByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	return r.findOne(ctx, bson.M{"number": number})
}

func (r *InvoiceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc invoiceDoc
	err := r.invoices.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *InvoiceRepository) ListBySupplier(ctx context.Context, supplierID string) ([]*domain.Invoice, error) {
	oid, ok := objectID(supplierID)
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.invoices.Find(ctx, bson.M{"supplier_id": oid})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Invoice
	for cur.Next(ctx) {
		var doc invoiceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *InvoiceRepository) CountBySupplier(ctx context.Context, supplierID string) (int64, error) {
	oid, ok := objectID(supplierID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.invoices.CountDocuments(ctx, bson.M{"supplier_id": oid})
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	oid, ok := objectID(inv.ID)
	if !ok {
		return domain.ErrInvoiceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.invoices.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"number":        inv.Number,
		"issue_date":    inv.IssueDate,
		"delivery_date": inv.DeliveryDate,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateInvoice
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// Delete removes an invoice and all of its line items.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrInvoiceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.invoices.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrInvoiceNotFound
	}

	_, err = r.items.DeleteMany(ctx, bson.M{"invoice_id": oid})
	return err
}

func (r *InvoiceRepository) AddItem(ctx context.Context, item *domain.InvoiceItem) (*domain.InvoiceItem, error) {
	invoiceOID, ok := objectID(item.InvoiceID)
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.items.InsertOne(ctx, invoiceItemDoc{
		InvoiceID:   invoiceOID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Group:       item.Group,
	})
	if err != nil {
		return nil, err
	}

	out := *item
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *InvoiceRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InvoiceItem, error) {
	oid, ok := objectID(itemID)
	if !ok {
		return nil, domain.ErrInvoiceItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc invoiceItemDoc
	err := r.items.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceItemNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *InvoiceRepository) ListItems(ctx context.Context, invoiceID string) ([]*domain.InvoiceItem, error) {
	oid, ok := objectID(invoiceID)
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.items.Find(ctx, bson.M{"invoice_id": oid})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.InvoiceItem
	for cur.Next(ctx) {
		var doc invoiceItemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *InvoiceRepository) UpdateItem(ctx context.Context, item *domain.InvoiceItem) error {
	oid, ok := objectID(item.ID)
	if !ok {
		return domain.ErrInvoiceItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.items.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"description": item.Description,
		"quantity":    item.Quantity,
		"unit_price":  item.UnitPrice,
		"group":       item.Group,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceItemNotFound
	}
	return nil
}

func (r *InvoiceRepository) DeleteItem(ctx context.Context, itemID string) error {
	oid, ok := objectID(itemID)
	if !ok {
		return domain.ErrInvoiceItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.items.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrInvoiceItemNotFound
	}
	return nil
}
