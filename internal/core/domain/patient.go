package domain

import (
	"errors"
	"time"
)

var ErrPatientNotFound = errors.New("patient not found")
var ErrProfessionalNotFound = errors.New("professional not found")

// Patient is a demographic record. All fields except Name and BirthDate are
// optional free text.
type Patient struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Nickname      string    `json:"nickname,omitempty" bson:"nickname,omitempty"`
	BirthDate     time.Time `json:"birth_date" bson:"birth_date"`
	Sex           string    `json:"sex" bson:"sex"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Mobile        string    `json:"mobile,omitempty" bson:"mobile,omitempty"`
	RG            string    `json:"rg,omitempty" bson:"rg,omitempty"`
	CPF           string    `json:"cpf,omitempty" bson:"cpf,omitempty"`
	MaritalStatus string    `json:"marital_status,omitempty" bson:"marital_status,omitempty"`
	Education     string    `json:"education,omitempty" bson:"education,omitempty"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Professional is a clinic staff record. CRO is the dental council registry.
type Professional struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	BirthDate     time.Time `json:"birth_date" bson:"birth_date"`
	Sex           string    `json:"sex" bson:"sex"`
	Color         string    `json:"color" bson:"color"`
	Email         string    `json:"email" bson:"email"`
	MaritalStatus string    `json:"marital_status" bson:"marital_status"`
	CRO           string    `json:"cro" bson:"cro"`
	Username      string    `json:"username,omitempty" bson:"username,omitempty"`
	RG            string    `json:"rg" bson:"rg"`
	CPF           string    `json:"cpf" bson:"cpf"`
}
