package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. One collection per aggregate.
const (
	collectionUsers         = "users"
	collectionMerchandise   = "merchandise"
	collectionSuppliers     = "suppliers"
	collectionInvoices      = "invoices"
	collectionInvoiceItems  = "invoice_items"
	collectionAuditLog      = "audit_log"
	collectionPatients      = "patients"
	collectionProfessionals = "professionals"
	collectionOdontogram    = "odontogram"
	collectionProcedures    = "procedures"
	collectionBudgetItems   = "budget_items"
	collectionAppointments  = "appointments"
)

// collectionIndexes declares the indexes backing the uniqueness rules and the
// hot lookups. Merchandise names and procedure names are stored in canonical
// (lowercased) form, so a plain unique index gives case-insensitive
// uniqueness at write time.
func collectionIndexes(_ *mongo.Database) map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		collectionMerchandise: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		collectionSuppliers: {
			{Keys: bson.D{{Key: "tax_id", Value: 1}}, Options: unique},
		},
		collectionInvoices: {
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
		},
		collectionInvoiceItems: {
			{Keys: bson.D{{Key: "invoice_id", Value: 1}}},
		},
		collectionAuditLog: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		collectionPatients: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		collectionProfessionals: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		collectionOdontogram: {
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "tooth", Value: 1}}},
		},
		collectionProcedures: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		collectionBudgetItems: {
			{Keys: bson.D{{Key: "patient_id", Value: 1}}},
		},
		collectionAppointments: {
			{Keys: bson.D{{Key: "start", Value: 1}}},
		},
	}
}
