package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopora_back_end/internal/models"
)

// MongoRepo persiste le panier dans la collection carts. L'index unique
// sur user_id garantit le panier unique par utilisateur ; le champ
// version porte le compare-and-swap contre les écritures concurrentes
// (double-clic sur "ajouter au panier").
type MongoRepo struct {
	Carts *mongo.Collection
}

func NewMongoRepo(carts *mongo.Collection) *MongoRepo {
	return &MongoRepo{Carts: carts}
}

func (r *MongoRepo) Load(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.Carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save écrase les lignes du panier si et seulement si la version lue
// est toujours la version stockée. Un panier jamais persisté (version 0)
// passe par un upsert : si un concurrent l'a créé entre-temps, l'index
// unique sur user_id fait échouer l'insertion et on signale le conflit.
func (r *MongoRepo) Save(ctx context.Context, cart *models.Cart) error {
	items := cart.Items
	if items == nil {
		items = []models.CartLine{}
	}
	now := time.Now()

	filter := bson.M{"user_id": cart.UserID, "version": cart.Version}
	update := bson.M{
		"$set":         bson.M{"items": items, "updated_at": now},
		"$inc":         bson.M{"version": 1},
		"$setOnInsert": bson.M{"created_at": now},
	}

	res, err := r.Carts.UpdateOne(ctx, filter, update,
		options.Update().SetUpsert(cart.ID.IsZero()))
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConflict
	}

	cart.Version++
	cart.UpdatedAt = now
	return nil
}

// Clear vide le panier sans condition de version : appelé après la
// création d'une commande, où l'intention "panier vide" prime sur tout
// état concurrent. Pas de panier = rien à faire.
func (r *MongoRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.Carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": bson.M{"items": []models.CartLine{}, "updated_at": time.Now()},
			"$inc": bson.M{"version": 1},
		})
	return err
}
