package cart

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopora_back_end/internal/models"
)

// Un resolver tente de désigner une ligne du panier à partir d'un
// identifiant hétérogène. Il renvoie l'indice de la ligne, ou -1 s'il
// ne se reconnaît pas dans l'identifiant ou ne trouve rien.
type resolver func(ctx context.Context, cart *models.Cart, targetID string) (int, error)

// resolveLine essaie chaque stratégie dans l'ordre ; la première qui
// trouve gagne. L'ordre (ligne, puis id catalogue, puis _id produit)
// est un arbitrage délibéré, pas un accident : il doit rester lisible
// ici plutôt que dilué dans des conditions imbriquées.
func (s *Store) resolveLine(ctx context.Context, cart *models.Cart, targetID string) (int, error) {
	chain := []resolver{
		s.byLineID,
		s.byCatalogID,
		s.byInternalID,
	}
	for _, resolve := range chain {
		idx, err := resolve(ctx, cart, targetID)
		if err != nil {
			return -1, err
		}
		if idx >= 0 {
			return idx, nil
		}
	}
	return -1, ErrLineNotFound
}

// Stratégie a : l'identifiant est celui d'une ligne du panier.
func (s *Store) byLineID(_ context.Context, cart *models.Cart, targetID string) (int, error) {
	for i := range cart.Items {
		if cart.Items[i].LineID == targetID {
			return i, nil
		}
	}
	return -1, nil
}

// Stratégie b : l'identifiant est un id catalogue numérique.
func (s *Store) byCatalogID(ctx context.Context, cart *models.Cart, targetID string) (int, error) {
	id, err := strconv.Atoi(targetID)
	if err != nil {
		return -1, nil
	}
	product, err := s.Catalog.ByCatalogID(ctx, id)
	if err != nil {
		return -1, err
	}
	return lineIndexFor(cart, product), nil
}

// Stratégie c : l'identifiant est un _id produit (forme ObjectID),
// tel que renvoyé par la projection de lecture du panier.
func (s *Store) byInternalID(ctx context.Context, cart *models.Cart, targetID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return -1, nil
	}
	product, err := s.Catalog.ByInternalID(ctx, oid)
	if err != nil {
		return -1, err
	}
	return lineIndexFor(cart, product), nil
}

func lineIndexFor(cart *models.Cart, product *models.Product) int {
	if product == nil {
		return -1
	}
	for i := range cart.Items {
		if cart.Items[i].Product == product.ID {
			return i
		}
	}
	return -1
}
