package handlers

import (
	"context"
	"time"

	"shopora_back_end/internal/cache"
	"shopora_back_end/internal/cart"
	"shopora_back_end/internal/catalog"
	"shopora_back_end/internal/database"
	"shopora_back_end/internal/models"
	"shopora_back_end/internal/orders"
	services "shopora_back_end/internal/service"
)

// ProductReader est la source de vérité du catalogue : dump complet et
// recherche de repli (scan regex).
type ProductReader interface {
	All(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// ProductSearcher est la recherche primaire (Elasticsearch). Une erreur
// déclenche le repli sur ProductReader.Search, jamais un échec client.
type ProductSearcher interface {
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// ProductCache est le cache du dump catalogue. Toute erreur vaut
// cache-miss.
type ProductCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Dépendances du périmètre HTTP, câblées une fois au démarrage sur les
// connexions globales. Les tests les remplacent par des implémentations
// en mémoire. Search et Cache restent nil quand Elasticsearch ou Redis
// ne sont pas configurés.
var (
	Catalog  catalog.Finder
	Products ProductReader
	Search   ProductSearcher
	Cache    ProductCache
	Cart     *cart.Store
	Orders   *orders.Materializer
)

func Init() {
	mongoCatalog := catalog.NewMongo(database.Mongo.Collection("products"))
	Catalog = mongoCatalog
	Products = mongoCatalog

	if database.Elastic != nil {
		Search = services.NewElastic(database.Elastic)
	}
	if database.Redis != nil {
		Cache = cache.NewRedis(database.Redis)
	}

	cartRepo := cart.NewMongoRepo(database.Mongo.Collection("carts"))
	Cart = &cart.Store{Repo: cartRepo, Catalog: Catalog}

	Orders = &orders.Materializer{
		Repo:    orders.NewMongoRepo(database.Mongo.Collection("orders")),
		Carts:   cartRepo,
		Catalog: Catalog,
	}
}
