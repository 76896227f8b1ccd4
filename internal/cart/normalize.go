package cart

import (
	"context"

	"shopora_back_end/internal/models"
)

// normalize projette les lignes internes vers la forme plate attendue
// par le frontend : {productId, name, category, image, price, quantity}.
// Une ligne dont le produit ne se résout plus est omise du résultat,
// jamais remontée en erreur. Avec withIDs, la projection porte aussi
// lineId et l'_id produit (lecture du panier uniquement).
func (s *Store) normalize(ctx context.Context, lines []models.CartLine, withIDs bool) ([]models.CartLineView, error) {
	views := make([]models.CartLineView, 0, len(lines))
	for _, line := range lines {
		product, err := s.Catalog.ByInternalID(ctx, line.Product)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}

		view := models.CartLineView{
			ProductID: product.CatalogID,
			Name:      product.Name,
			Category:  product.Category,
			Image:     product.Image,
			Price:     product.SellingPrice,
			Quantity:  line.Quantity,
		}
		if withIDs {
			view.LineID = line.LineID
			view.InternalID = product.ID.Hex()
		}
		views = append(views, view)
	}
	return views, nil
}
