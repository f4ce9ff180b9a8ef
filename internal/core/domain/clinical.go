package domain

import "errors"

var ErrOdontogramEntryNotFound = errors.New("odontogram entry not found")
var ErrProcedureNotFound = errors.New("procedure not found")
var ErrDuplicateProcedure = errors.New("procedure name already exists")
var ErrBudgetItemNotFound = errors.New("budget item not found")

// OdontogramEntry records the clinical status of one tooth of a patient.
// Entries are keyed conceptually by (patient, tooth) but not unique at
// storage; edits are last-write-wins.
type OdontogramEntry struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	PatientID string `json:"patient_id" bson:"patient_id"`
	Tooth     string `json:"tooth" bson:"tooth"`
	Status    string `json:"status" bson:"status"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Procedure is a price catalog entry with a unique name.
type Procedure struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price"`
}

// BudgetItem ties one priced procedure to one tooth of a patient. Price is
// copied from the procedure at creation time and never re-derived afterwards,
// keeping historical quotes stable against catalog edits.
type BudgetItem struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	PatientID   string  `json:"patient_id" bson:"patient_id"`
	Tooth       string  `json:"tooth" bson:"tooth"`
	ProcedureID string  `json:"procedure_id" bson:"procedure_id"`
	Notes       string  `json:"notes,omitempty" bson:"notes,omitempty"`
	Price       float64 `json:"price" bson:"price"`
}
