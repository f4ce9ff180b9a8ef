package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

type PatientRepository struct {
	col *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{col: db.Collection(collectionPatients)}
}

type patientDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Nickname      string             `bson:"nickname,omitempty"`
	BirthDate     time.Time          `bson:"birth_date"`
	Sex           string             `bson:"sex"`
	Email         string             `bson:"email,omitempty"`
	Mobile        string             `bson:"mobile,omitempty"`
	RG            string             `bson:"rg,omitempty"`
	CPF           string             `bson:"cpf,omitempty"`
	MaritalStatus string             `bson:"marital_status,omitempty"`
	Education     string             `bson:"education,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
}

func (d patientDoc) toDomain() *domain.Patient {
	return &domain.Patient{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Nickname:      d.Nickname,
		BirthDate:     d.BirthDate,
		Sex:           d.Sex,
		Email:         d.Email,
		Mobile:        d.Mobile,
		RG:            d.RG,
		CPF:           d.CPF,
		MaritalStatus: d.MaritalStatus,
		Education:     d.Education,
		Notes:         d.Notes,
	}
}

func patientFields(p *domain.Patient) bson.M {
	return bson.M{
		"name":           p.Name,
		"nickname":       p.Nickname,
		"birth_date":     p.BirthDate,
		"sex":            p.Sex,
		"email":          p.Email,
		"mobile":         p.Mobile,
		"rg":             p.RG,
		"cpf":            p.CPF,
		"marital_status": p.MaritalStatus,
		"education":      p.Education,
		"notes":          p.Notes,
	}
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, patientFields(p))
	if err != nil {
		return nil, err
	}

	out := *p
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc patientDoc
	err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PatientRepository) List(ctx context.Context, query string) ([]*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, nameFilter(query))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Patient
	for cur.Next(ctx) {
		var doc patientDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *PatientRepository) Update(ctx context.Context, p *domain.Patient) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": patientFields(p)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

type ProfessionalRepository struct {
	col *mongo.Collection
}

func NewProfessionalRepository(db *mongo.Database) *ProfessionalRepository {
	return &ProfessionalRepository{col: db.Collection(collectionProfessionals)}
}

type professionalDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	BirthDate     time.Time          `bson:"birth_date"`
	Sex           string             `bson:"sex"`
	Color         string             `bson:"color"`
	Email         string             `bson:"email"`
	MaritalStatus string             `bson:"marital_status"`
	CRO           string             `bson:"cro"`
	Username      string             `bson:"username,omitempty"`
	RG            string             `bson:"rg"`
	CPF           string             `bson:"cpf"`
}

func (d professionalDoc) toDomain() *domain.Professional {
	return &domain.Professional{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		BirthDate:     d.BirthDate,
		Sex:           d.Sex,
		Color:         d.Color,
		Email:         d.Email,
		MaritalStatus: d.MaritalStatus,
		CRO:           d.CRO,
		Username:      d.Username,
		RG:            d.RG,
		CPF:           d.CPF,
	}
}

func professionalFields(p *domain.Professional) bson.M {
	return bson.M{
		"name":           p.Name,
		"birth_date":     p.BirthDate,
		"sex":            p.Sex,
		"color":          p.Color,
		"email":          p.Email,
		"marital_status": p.MaritalStatus,
		"cro":            p.CRO,
		"username":       p.Username,
		"rg":             p.RG,
		"cpf":            p.CPF,
	}
}

func (r *ProfessionalRepository) Create(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, professionalFields(p))
	if err != nil {
		return nil, err
	}

	out := *p
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *ProfessionalRepository) FindByID(ctx context.Context, id string) (*domain.Professional, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProfessionalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc professionalDoc
	err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfessionalNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ProfessionalRepository) List(ctx context.Context, query string) ([]*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, nameFilter(query))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Professional
	for cur.Next(ctx) {
		var doc professionalDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ProfessionalRepository) Update(ctx context.Context, p *domain.Professional) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return domain.ErrProfessionalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": professionalFields(p)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfessionalNotFound
	}
	return nil
}

func (r *ProfessionalRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProfessionalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfessionalNotFound
	}
	return nil
}

// nameFilter matches all documents when query is empty, otherwise documents
// whose name contains query, case-insensitive.
func nameFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	return bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
}
