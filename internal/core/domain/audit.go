package domain

import "time"

// Audit action labels. One label per mutating inventory/supplier operation.
const (
	ActionMerchandiseCreated = "merchandise_created"
	ActionMerchandiseUpdated = "merchandise_updated"
	ActionMerchandiseDeleted = "merchandise_deleted"
	ActionSupplierCreated    = "supplier_created"
	ActionSupplierUpdated    = "supplier_updated"
	ActionSupplierDeleted    = "supplier_deleted"
)

// AuditEntry is an immutable record of a mutating action. UserID is empty for
// system actions; MerchandiseID and SupplierID reference the affected entity
// when one applies. Canonical read order is CreatedAt descending.
type AuditEntry struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	UserID        string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Action        string    `json:"action" bson:"action"`
	MerchandiseID string    `json:"merchandise_id,omitempty" bson:"merchandise_id,omitempty"`
	SupplierID    string    `json:"supplier_id,omitempty" bson:"supplier_id,omitempty"`
	Description   string    `json:"description" bson:"description"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
