package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shopora_back_end/internal/config"
	"shopora_back_end/internal/database"
	"shopora_back_end/internal/handlers"
	"shopora_back_end/internal/routes"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.Disconnect()

	// ✅ Câblage des stores sur les connexions établies
	handlers.Init()

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Shopora lancé sur le port", port)
	r.Run(":" + port)
}
