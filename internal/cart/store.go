// Package cart implémente le panier : un document par utilisateur,
// ajout avec fusion, résolution d'identifiants multi-stratégies et
// lectures tolérantes aux produits disparus du catalogue.
package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"shopora_back_end/internal/catalog"
	"shopora_back_end/internal/models"
)

// Repo est la persistance du panier. Load renvoie (nil, nil) quand
// l'utilisateur n'a pas encore de panier. Save est un compare-and-swap
// sur (user_id, version) et renvoie ErrConflict en cas de course.
type Repo interface {
	Load(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID string) error
}

type Store struct {
	Repo    Repo
	Catalog catalog.Finder
}

// Nombre de tentatives avant d'abandonner sur ErrConflict. Les courses
// sur un même panier (double-clic) sont rares et courtes.
const saveAttempts = 3

// GetCart renvoie la projection normalisée du panier, avec les
// identifiants internes pour permettre un ciblage ultérieur des lignes.
// Absence de panier = liste vide, jamais une erreur. Les lignes dont le
// produit a disparu sont omises silencieusement.
func (s *Store) GetCart(ctx context.Context, userID string) ([]models.CartLineView, error) {
	cart, err := s.Repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []models.CartLineView{}, nil
	}
	return s.normalize(ctx, cart.Items, true)
}

// AddItem résout l'id catalogue puis fusionne : une ligne au plus par
// produit, la quantité demandée s'ajoute à l'existante. Volontairement
// non idempotent : appeler deux fois ajoute deux fois.
func (s *Store) AddItem(ctx context.Context, userID string, catalogID, quantity int) ([]models.CartLineView, error) {
	product, err := s.Catalog.ByCatalogID(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	// Quantité absente ou non positive : on retombe sur 1, comme le
	// ferait un formulaire sans champ quantité.
	if quantity <= 0 {
		quantity = 1
	}

	cart, err := s.mutate(ctx, userID, true, func(cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].Product == product.ID {
				cart.Items[i].Quantity += quantity
				return nil
			}
		}
		cart.Items = append(cart.Items, models.CartLine{
			LineID:   uuid.NewString(),
			Product:  product.ID,
			Quantity: quantity,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.normalize(ctx, cart.Items, false)
}

// UpdateQuantity fixe la quantité d'une ligne (valeur absolue, pas un
// incrément). Une quantité ≤ 0 dégrade l'opération en suppression de la
// ligne plutôt que de persister une valeur non positive.
func (s *Store) UpdateQuantity(ctx context.Context, userID, targetID string, quantity int) ([]models.CartLineView, error) {
	cart, err := s.mutate(ctx, userID, false, func(cart *models.Cart) error {
		idx, err := s.resolveLine(ctx, cart, targetID)
		if err != nil {
			return err
		}
		if quantity <= 0 {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
			return nil
		}
		cart.Items[idx].Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.normalize(ctx, cart.Items, false)
}

// RemoveItem supprime la ligne désignée. Supprimer une ligne absente est
// une erreur, pas un no-op : cette asymétrie avec la lecture tolérante
// est voulue.
func (s *Store) RemoveItem(ctx context.Context, userID, targetID string) ([]models.CartLineView, error) {
	cart, err := s.mutate(ctx, userID, false, func(cart *models.Cart) error {
		idx, err := s.resolveLine(ctx, cart, targetID)
		if err != nil {
			return err
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.normalize(ctx, cart.Items, false)
}

// mutate porte le cycle commun des écritures : chargement (ou création
// paresseuse), purge des références mortes, mutation, sauvegarde CAS
// avec rejeu en cas de conflit.
func (s *Store) mutate(ctx context.Context, userID string, createIfMissing bool, fn func(cart *models.Cart) error) (*models.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		cart, err := s.Repo.Load(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cart == nil {
			if !createIfMissing {
				return nil, ErrCartNotFound
			}
			cart = &models.Cart{UserID: userID}
		}

		live, err := s.liveLines(ctx, cart.Items)
		if err != nil {
			return nil, err
		}
		cart.Items = live

		if err := fn(cart); err != nil {
			return nil, err
		}

		if err := s.Repo.Save(ctx, cart); err != nil {
			if errors.Is(err, ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return cart, nil
	}
	return nil, lastErr
}

// liveLines élimine les lignes dont la référence produit ne se résout
// plus (produit supprimé du catalogue). Appelé à chaque écriture :
// nettoyage paresseux, jamais bloquant pour la lecture.
func (s *Store) liveLines(ctx context.Context, lines []models.CartLine) ([]models.CartLine, error) {
	live := lines[:0]
	for _, line := range lines {
		product, err := s.Catalog.ByInternalID(ctx, line.Product)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		live = append(live, line)
	}
	return live, nil
}
