package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Variables Globales ---
var (
	Client  *mongo.Client
	Mongo   *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. MongoDB (source de vérité : produits, paniers, commandes, utilisateurs)
	connectMongo(ctx)

	// 2. Redis (cache catalogue, optionnel)
	connectRedis(ctx)

	// 3. Elasticsearch (recherche produits, optionnel)
	connectElastic()

	// 4. Index uniques (un panier par utilisateur, id catalogue unique)
	ensureIndexes(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// Disconnect ferme proprement les connexions ouvertes par
// ConnectDatabases. Les échecs sont loggés, jamais fatals : on est en
// train de s'arrêter.
func Disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Println("⚠️ Erreur déconnexion MongoDB:", err)
		} else {
			log.Println("🔌 MongoDB déconnecté")
		}
	}
	if Redis != nil {
		if err := Redis.Close(); err != nil {
			log.Println("⚠️ Erreur fermeture Redis:", err)
		} else {
			log.Println("🔌 Redis fermé")
		}
	}
}

// =============================================
// MONGODB
// =============================================
func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		log.Fatal("❌ MONGO_URL manquant dans .env")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ Erreur connexion MongoDB:", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("❌ MongoDB injoignable:", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "shopora"
	}

	Client = client
	Mongo = client.Database(dbName)
	log.Println("✅ Connecté à MongoDB :", dbName)
}

// ensureIndexes pose les contraintes d'unicité au niveau stockage.
// Un seul panier par utilisateur : c'est l'index, pas un verrou
// applicatif, qui porte l'invariant.
func ensureIndexes(ctx context.Context) {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{"products", mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}},
		{"carts", mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique}},
		{"users", mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{"orders", mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}}},
	}

	for _, idx := range indexes {
		if _, err := Mongo.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			log.Fatalf("❌ Échec création index sur %s: %v", idx.collection, err)
		}
	}
	log.Println("✅ Index MongoDB vérifiés")
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		log.Println("⚠️ REDIS_HOST non configuré — cache catalogue désactivé")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Redis injoignable, on continue sans cache:", err)
		return
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche via MongoDB uniquement")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable, repli sur MongoDB:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}
