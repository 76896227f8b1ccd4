package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopora_back_end/internal/models"
	"shopora_back_end/internal/orders"
)

// 🟢 GET /orders
// Commandes de l'utilisateur connecté, les plus récentes d'abord.
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	list, err := Orders.ListOrders(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur récupération commandes"})
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	c.JSON(http.StatusOK, list)
}

// 🟢 POST /orders
// Checkout : fige les lignes soumises (nom/prix/quantité tels quels,
// jamais re-tarifés), écrit la commande, puis vide le panier.
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Utilisateur non authentifié"})
		return
	}

	var input orders.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := Orders.PlaceOrder(ctx, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNoItems):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Aucun article fourni pour la commande"})
		case errors.Is(err, orders.ErrLineUnresolved):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Ligne de commande sans référence produit"})
		default:
			log.Println("❌ Erreur création commande:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création commande"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Commande créée avec succès", "order": order})
}
