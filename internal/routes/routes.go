package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopora_back_end/internal/handlers"
	"shopora_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// Liveness
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Serveur Shopora en ligne")
	})

	// Catalogue (public)
	r.GET("/products", handlers.GetProducts)
	r.GET("/products/search", handlers.SearchProducts)
	r.GET("/products/:id", handlers.GetProductByID)

	// Authentification (collaborateur local)
	r.POST("/auth/register", handlers.Register)
	r.POST("/auth/login", handlers.Login)

	// Panier (authentifié)
	cart := r.Group("/cart")
	cart.Use(middleware.AuthRequired())
	{
		cart.GET("", handlers.GetCart)
		cart.POST("", handlers.AddToCart)
		cart.PATCH("/:id", handlers.UpdateCartItem)
		cart.DELETE("/:id", handlers.RemoveCartItem)
	}

	// Commandes (authentifié)
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.GET("", handlers.GetMyOrders)
		orders.POST("", handlers.CreateOrder)
	}

	// Profil
	r.GET("/profile", middleware.AuthRequired(), handlers.GetProfile)
}
