package mongo

import "go.mongodb.org/mongo-driver/bson/primitive"

// objectID parses a hex entity id. The second return is false for ids that
// can never match a stored document, which repositories map to their domain
// not-found error instead of surfacing a driver error.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
