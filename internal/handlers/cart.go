package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopora_back_end/internal/cart"
)

// 🟢 GET /cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := Cart.GetCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur récupération panier"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// 🟢 POST /cart
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		ProductID *int `json:"productId"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId requis"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := Cart.AddItem(ctx, userID, *input.ProductID, input.Quantity)
	if err != nil {
		cartError(c, err, "Erreur ajout au panier")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier mis à jour", "cart": items})
}

// 🟢 PATCH /cart/:id
// :id peut être un id de ligne, un id catalogue numérique ou un _id
// produit — essayés dans cet ordre.
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := Cart.UpdateQuantity(ctx, userID, c.Param("id"), input.Quantity)
	if err != nil {
		cartError(c, err, "Erreur mise à jour panier")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier mis à jour", "cart": items})
}

// 🟢 DELETE /cart/:id
func RemoveCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	items, err := Cart.RemoveItem(ctx, userID, c.Param("id"))
	if err != nil {
		cartError(c, err, "Erreur suppression article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit retiré du panier", "cart": items})
}

func cartError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit introuvable"})
	case errors.Is(err, cart.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Panier introuvable"})
	case errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit ou ligne introuvable dans le panier"})
	case errors.Is(err, cart.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "Panier modifié en parallèle, réessayez"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
