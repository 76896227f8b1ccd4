package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart : un seul panier par utilisateur (index unique sur user_id).
// Version sert au compare-and-swap lors des écritures concurrentes.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`
	Items     []CartLine         `bson:"items" json:"items"`
	Version   int64              `bson:"version" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CartLine référence le produit par son _id Mongo (référence faible :
// le produit peut disparaître du catalogue sans invalider le panier).
type CartLine struct {
	LineID   string             `bson:"line_id" json:"lineId"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// CartLineView est la projection aplatie attendue par le frontend.
// LineID et InternalID ne sont renvoyés que sur la lecture du panier,
// pour permettre un PATCH/DELETE ciblé par ligne ou par _id produit.
type CartLineView struct {
	ProductID  int     `json:"productId"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	LineID     string  `json:"lineId,omitempty"`
	InternalID string  `json:"_id,omitempty"`
}
