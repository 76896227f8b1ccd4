package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product est en lecture seule pour le coeur boutique : le catalogue
// (service admin) est le seul à écrire dans cette collection.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CatalogID     int                `bson:"id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Category      string             `bson:"category" json:"category"`
	Image         string             `bson:"image" json:"image"`
	OriginalPrice float64            `bson:"originalPrice" json:"originalPrice"`
	SellingPrice  float64            `bson:"sellingPrice" json:"sellingPrice"`
	Description   string             `bson:"description" json:"description"`
}
