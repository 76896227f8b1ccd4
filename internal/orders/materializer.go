// Package orders matérialise une commande : copie figée des lignes du
// panier (nom, prix, quantité au moment de l'achat), puis vidage du
// panier source. Une commande n'est jamais modifiée ni supprimée par ce
// service ; seules ses créations passent ici.
package orders

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopora_back_end/internal/catalog"
	"shopora_back_end/internal/models"
)

var (
	// ErrNoItems : commande sans aucune ligne.
	ErrNoItems = errors.New("aucun article fourni pour la commande")

	// ErrLineUnresolved : une ligne ne porte aucune référence produit
	// exploitable (_id, product, ou id catalogue numérique).
	ErrLineUnresolved = errors.New("ligne de commande sans référence produit")
)

// Repo est la persistance des commandes, en append-only côté coeur.
type Repo interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// CartClearer vide le panier d'un utilisateur. Satisfait par le repo
// panier ; découplé ici pour que le checkout ne voie que ce geste.
type CartClearer interface {
	Clear(ctx context.Context, userID string) error
}

type Materializer struct {
	Repo    Repo
	Carts   CartClearer
	Catalog catalog.Finder
}

// LineInput est une ligne telle que soumise au checkout. Le client
// renvoie généralement la projection du panier : _id (id interne
// produit), productId (id catalogue), price ou sellingPrice.
type LineInput struct {
	InternalID   string  `json:"_id"`
	Product      string  `json:"product"`
	ProductID    int     `json:"productId"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	SellingPrice float64 `json:"sellingPrice"`
	Image        string  `json:"image"`
}

type PlaceOrderInput struct {
	Items           []LineInput            `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	PaymentID       string                 `json:"paymentId"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// PlaceOrder écrit la commande puis vide le panier. Les deux écritures
// ne forment pas une transaction : si le vidage échoue après que la
// commande est durable, la commande reste valide et l'échec est
// seulement journalisé (le client peut revoir un panier périmé, jamais
// perdre une commande). Le totalAmount est accepté tel quel, sans
// recalcul côté serveur.
func (m *Materializer) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	lines := make([]models.OrderLine, 0, len(input.Items))
	for _, item := range input.Items {
		ref, err := m.resolveRef(ctx, item)
		if err != nil {
			return nil, err
		}

		// Prix et quantité copiés tels que soumis : le prix au moment
		// de l'achat prime sur le prix catalogue courant.
		price := item.Price
		if price == 0 {
			price = item.SellingPrice
		}

		lines = append(lines, models.OrderLine{
			Product:  ref,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    price,
			Image:    item.Image,
		})
	}

	now := time.Now()
	order := &models.Order{
		UserID:          userID,
		Items:           lines,
		TotalAmount:     input.TotalAmount,
		Status:          models.StatusProcessing,
		PaymentID:       input.PaymentID,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := m.Repo.Insert(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id

	// Vidage best-effort : la commande est déjà durable.
	if err := m.Carts.Clear(ctx, userID); err != nil {
		log.Println("⚠️ Échec vidage du panier après commande:", err)
	}

	return order, nil
}

// ListOrders renvoie les commandes de l'utilisateur, les plus récentes
// d'abord.
func (m *Materializer) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return m.Repo.ListByUser(ctx, userID)
}

// resolveRef extrait la référence produit d'une ligne soumise :
// _id, puis product, puis repli sur l'id catalogue numérique.
func (m *Materializer) resolveRef(ctx context.Context, item LineInput) (primitive.ObjectID, error) {
	if oid, err := primitive.ObjectIDFromHex(item.InternalID); err == nil {
		return oid, nil
	}
	if oid, err := primitive.ObjectIDFromHex(item.Product); err == nil {
		return oid, nil
	}
	if item.ProductID > 0 {
		product, err := m.Catalog.ByCatalogID(ctx, item.ProductID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		if product != nil {
			return product.ID, nil
		}
	}
	return primitive.NilObjectID, ErrLineUnresolved
}
