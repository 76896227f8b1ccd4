package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopora_back_end/internal/models"
)

const (
	productsCacheKey = "products:all"
	productsCacheTTL = 5 * time.Minute
)

// 🟢 GET /products
// Dump complet du catalogue, servi depuis le cache quand il est chaud.
// Une panne du cache n'est jamais une erreur pour le client : on replie
// sur MongoDB.
func GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if Cache != nil {
		if data, err := Cache.Get(ctx, productsCacheKey); err == nil && data != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(data))
			return
		}
	}

	products, err := Products.All(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur récupération produits"})
		return
	}

	if Cache != nil {
		if payload, err := json.Marshal(products); err == nil {
			Cache.Set(ctx, productsCacheKey, payload, productsCacheTTL)
		}
	}

	c.JSON(http.StatusOK, products)
}

// 🟢 GET /products/:id
// Accepte l'id catalogue numérique ou l'_id interne.
func GetProductByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	target := c.Param("id")

	var (
		product *models.Product
		err     error
	)
	if n, convErr := strconv.Atoi(target); convErr == nil {
		product, err = Catalog.ByCatalogID(ctx, n)
	} else if oid, oidErr := primitive.ObjectIDFromHex(target); oidErr == nil {
		product, err = Catalog.ByInternalID(ctx, oid)
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Identifiant produit invalide"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur récupération produit"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// 🟢 GET /products/search?q=
// Recherche Elasticsearch, avec repli sur un scan regex MongoDB quand
// le cluster est absent ou injoignable.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Paramètre q requis"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		results []models.Product
		err     error
	)
	if Search != nil {
		results, err = Search.Search(ctx, query)
	}
	if Search == nil || err != nil {
		if err != nil {
			log.Println("⚠️ Recherche Elastic indisponible, repli MongoDB:", err)
		}
		results, err = Products.Search(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur recherche produits"})
			return
		}
	}

	c.JSON(http.StatusOK, results)
}
