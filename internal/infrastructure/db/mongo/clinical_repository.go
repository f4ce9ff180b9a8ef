package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

type OdontogramRepository struct {
	col *mongo.Collection
}

func NewOdontogramRepository(db *mongo.Database) *OdontogramRepository {
	return &OdontogramRepository{col: db.Collection(collectionOdontogram)}
}

type odontogramDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PatientID primitive.ObjectID `bson:"patient_id"`
	Tooth     string             `bson:"tooth"`
	Status    string             `bson:"status"`
	Notes     string             `bson:"notes,omitempty"`
}

func (d odontogramDoc) toDomain() *domain.OdontogramEntry {
	return &domain.OdontogramEntry{
		ID:        d.ID.Hex(),
		PatientID: d.PatientID.Hex(),
		Tooth:     d.Tooth,
		Status:    d.Status,
		Notes:     d.Notes,
	}
}

func (r *OdontogramRepository) Create(ctx context.Context, e *domain.OdontogramEntry) (*domain.OdontogramEntry, error) {
	patientOID, ok := objectID(e.PatientID)
	if !ok {
		return nil, domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, odontogramDoc{
		PatientID: patientOID,
		Tooth:     e.Tooth,
		Status:    e.Status,
		Notes:     e.Notes,
	})
	if err != nil {
		return nil, err
	}

	out := *e
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *OdontogramRepository) FindByID(ctx context.Context, id string) (*domain.OdontogramEntry, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOdontogramEntryNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *OdontogramRepository) FindByTooth(ctx context.Context, patientID, tooth string) (*domain.OdontogramEntry, error) {
	patientOID, ok := objectID(patientID)
	if !ok {
		return nil, domain.ErrOdontogramEntryNotFound
	}
	return r.findOne(ctx, bson.M{"patient_id": patientOID, "tooth": tooth})
}

func (r *OdontogramRepository) findOne(ctx context.Context, filter bson.M) (*domain.OdontogramEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc odontogramDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOdontogramEntryNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *OdontogramRepository) ListByPatient(ctx context.Context, patientID string) ([]*domain.OdontogramEntry, error) {
	patientOID, ok := objectID(patientID)
	if !ok {
		return nil, domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"patient_id": patientOID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.OdontogramEntry
	for cur.Next(ctx) {
		var doc odontogramDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *OdontogramRepository) Update(ctx context.Context, e *domain.OdontogramEntry) error {
	oid, ok := objectID(e.ID)
	if !ok {
		return domain.ErrOdontogramEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"tooth":  e.Tooth,
		"status": e.Status,
		"notes":  e.Notes,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOdontogramEntryNotFound
	}
	return nil
}

type ProcedureRepository struct {
	col *mongo.Collection
}

func NewProcedureRepository(db *mongo.Database) *ProcedureRepository {
	return &ProcedureRepository{col: db.Collection(collectionProcedures)}
}

type procedureDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
}

func (d procedureDoc) toDomain() *domain.Procedure {
	return &domain.Procedure{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
	}
}

func (r *ProcedureRepository) Create(ctx context.Context, p *domain.Procedure) (*domain.Procedure, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, procedureDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateProcedure
		}
		return nil, err
	}

	out := *p
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *ProcedureRepository) FindByID(ctx context.Context, id string) (*domain.Procedure, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProcedureNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ProcedureRepository) FindByName(ctx context.Context, name string) (*domain.Procedure, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *ProcedureRepository) findOne(ctx context.Context, filter bson.M) (*domain.Procedure, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc procedureDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProcedureNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ProcedureRepository) List(ctx context.Context) ([]*domain.Procedure, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Procedure
	for cur.Next(ctx) {
		var doc procedureDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ProcedureRepository) Update(ctx context.Context, p *domain.Procedure) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return domain.ErrProcedureNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateProcedure
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProcedureNotFound
	}
	return nil
}

func (r *ProcedureRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProcedureNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProcedureNotFound
	}
	return nil
}

type BudgetRepository struct {
	col *mongo.Collection
}

func NewBudgetRepository(db *mongo.Database) *BudgetRepository {
	return &BudgetRepository{col: db.Collection(collectionBudgetItems)}
}

type budgetItemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PatientID   primitive.ObjectID `bson:"patient_id"`
	Tooth       string             `bson:"tooth"`
	ProcedureID primitive.ObjectID `bson:"procedure_id"`
	Notes       string             `bson:"notes,omitempty"`
	Price       float64            `bson:"price"`
}

func (d budgetItemDoc) toDomain() *domain.BudgetItem {
	return &domain.BudgetItem{
		ID:          d.ID.Hex(),
		PatientID:   d.PatientID.Hex(),
		Tooth:       d.Tooth,
		ProcedureID: d.ProcedureID.Hex(),
		Notes:       d.Notes,
		Price:       d.Price,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, item *domain.BudgetItem) (*domain.BudgetItem, error) {
	patientOID, ok := objectID(item.PatientID)
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	procedureOID, ok := objectID(item.ProcedureID)
	if !ok {
		return nil, domain.ErrProcedureNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, budgetItemDoc{
		PatientID:   patientOID,
		Tooth:       item.Tooth,
		ProcedureID: procedureOID,
		Notes:       item.Notes,
		Price:       item.Price,
	})
	if err != nil {
		return nil, err
	}

	out := *item
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *BudgetRepository) FindByID(ctx context.Context, id string) (*domain.BudgetItem, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrBudgetItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc budgetItemDoc
	err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBudgetItemNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *BudgetRepository) ListByPatient(ctx context.Context, patientID string) ([]*domain.BudgetItem, error) {
	patientOID, ok := objectID(patientID)
	if !ok {
		return nil, domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Natural _id order preserves insertion order for the quote view.
	cur, err := r.col.Find(ctx, bson.M{"patient_id": patientOID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.BudgetItem
	for cur.Next(ctx) {
		var doc budgetItemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, item *domain.BudgetItem) error {
	oid, ok := objectID(item.ID)
	if !ok {
		return domain.ErrBudgetItemNotFound
	}
	procedureOID, ok := objectID(item.ProcedureID)
	if !ok {
		return domain.ErrProcedureNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"tooth":        item.Tooth,
		"procedure_id": procedureOID,
		"notes":        item.Notes,
		"price":        item.Price,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrBudgetItemNotFound
	}
	return nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrBudgetItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBudgetItemNotFound
	}
	return nil
}
