package domain

import "errors"

var ErrMerchandiseNotFound = errors.New("merchandise not found")
var ErrDuplicateMerchandise = errors.New("merchandise name already exists")

// Merchandise is a stock item. Names are unique case-insensitively; the
// canonical form stored is trimmed and lowercased.
type Merchandise struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
}
