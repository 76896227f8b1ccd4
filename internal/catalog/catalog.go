// Package catalog expose la résolution de produits, seule dépendance du
// coeur boutique envers le catalogue (géré par un service admin externe).
package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopora_back_end/internal/models"
)

// Finder résout une référence produit. L'absence est (nil, nil), jamais
// une erreur : c'est l'appelant qui décide si elle est fatale.
type Finder interface {
	ByCatalogID(ctx context.Context, id int) (*models.Product, error)
	ByInternalID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type Mongo struct {
	Products *mongo.Collection
}

func NewMongo(products *mongo.Collection) *Mongo {
	return &Mongo{Products: products}
}

// ByCatalogID cherche par l'identifiant numérique public, immuable.
func (m *Mongo) ByCatalogID(ctx context.Context, id int) (*models.Product, error) {
	return m.findOne(ctx, bson.M{"id": id})
}

// ByInternalID cherche par l'_id de stockage.
func (m *Mongo) ByInternalID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

// All renvoie le catalogue complet (dump public).
func (m *Mongo) All(ctx context.Context) ([]models.Product, error) {
	return m.find(ctx, bson.M{})
}

// Search fait un scan regex insensible à la casse sur nom, catégorie et
// description. Sert de repli quand Elasticsearch est indisponible.
func (m *Mongo) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: query, Options: "i"}
	return m.find(ctx, bson.M{"$or": []bson.M{
		{"name": pattern},
		{"category": pattern},
		{"description": pattern},
	}})
}

func (m *Mongo) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := m.Products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (m *Mongo) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	var product models.Product
	err := m.Products.FindOne(ctx, filter).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
