package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopora_back_end/internal/models"
)

// Fakes pour le périmètre produit : lecteur Mongo, moteur Elastic et
// cache Redis, avec pannes injectables.

type memProducts struct {
	products []*models.Product
	allCalls int
	err      error
}

func (f *memProducts) All(_ context.Context) ([]models.Product, error) {
	f.allCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *memProducts) Search(_ context.Context, query string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Product
	needle := strings.ToLower(query)
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, *p)
		}
	}
	return out, nil
}

type memSearcher struct {
	results []models.Product
	err     error
	calls   int
}

func (f *memSearcher) Search(_ context.Context, _ string) ([]models.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type memCache struct {
	entries map[string]string
	getErr  error
	setErr  error
	sets    int
}

func (f *memCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.entries[key], nil
}

func (f *memCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	if f.entries == nil {
		f.entries = map[string]string{}
	}
	f.entries[key] = string(payload)
	return nil
}

// newProductRouter câble le périmètre produit sur des fakes. Search et
// Cache restent nil sauf réglage explicite, comme au démarrage sans
// Elasticsearch ni Redis.
func newProductRouter(products ...*models.Product) (*gin.Engine, *memProducts) {
	reader := &memProducts{products: products}
	catalog := &memCatalog{products: products}

	Catalog = catalog
	Products = reader
	Search = nil
	Cache = nil

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts)
	r.GET("/products/search", SearchProducts)
	r.GET("/products/:id", GetProductByID)
	return r, reader
}

func decodeProducts(t *testing.T, body string) []models.Product {
	t.Helper()
	var out []models.Product
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestGetProductsServedFromCacheWhenWarm(t *testing.T) {
	r, reader := newProductRouter(catalogProduct(1, "Clavier", 49.99))

	cached, _ := json.Marshal([]models.Product{*catalogProduct(7, "Écran", 199)})
	Cache = &memCache{entries: map[string]string{productsCacheKey: string(cached)}}

	w := doJSON(r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeProducts(t, w.Body.String())
	require.Len(t, got, 1)
	assert.Equal(t, "Écran", got[0].Name)
	assert.Equal(t, 0, reader.allCalls, "le cache chaud ne doit pas toucher Mongo")
}

func TestGetProductsCacheMissFillsCache(t *testing.T) {
	r, reader := newProductRouter(catalogProduct(1, "Clavier", 49.99))
	fake := &memCache{entries: map[string]string{}}
	Cache = fake

	w := doJSON(r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeProducts(t, w.Body.String())
	require.Len(t, got, 1)
	assert.Equal(t, "Clavier", got[0].Name)
	assert.Equal(t, 1, reader.allCalls)
	assert.Equal(t, 1, fake.sets, "le miss doit repeupler le cache")
	assert.NotEmpty(t, fake.entries[productsCacheKey])
}

func TestGetProductsSurvivesCacheOutage(t *testing.T) {
	r, reader := newProductRouter(catalogProduct(1, "Clavier", 49.99))
	Cache = &memCache{getErr: errors.New("redis: connection refused"), setErr: errors.New("redis: connection refused")}

	w := doJSON(r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeProducts(t, w.Body.String())
	require.Len(t, got, 1)
	assert.Equal(t, 1, reader.allCalls, "panne Redis = miss, on sert Mongo")
}

func TestGetProductsWithoutCacheConfigured(t *testing.T) {
	r, _ := newProductRouter(catalogProduct(1, "Clavier", 49.99))

	w := doJSON(r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeProducts(t, w.Body.String()), 1)
}

func TestSearchUsesPrimaryEngineWhenHealthy(t *testing.T) {
	r, _ := newProductRouter(catalogProduct(1, "Clavier", 49.99))
	engine := &memSearcher{results: []models.Product{*catalogProduct(2, "Clavier mécanique", 89)}}
	Search = engine

	w := doJSON(r, http.MethodGet, "/products/search?q=clavier", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeProducts(t, w.Body.String())
	require.Len(t, got, 1)
	assert.Equal(t, "Clavier mécanique", got[0].Name)
	assert.Equal(t, 1, engine.calls)
}

func TestSearchFallsBackToMongoWhenEngineDown(t *testing.T) {
	r, _ := newProductRouter(
		catalogProduct(1, "Clavier", 49.99),
		catalogProduct(2, "Souris", 19.99),
	)
	Search = &memSearcher{err: errors.New("elastic: no available connection")}

	w := doJSON(r, http.MethodGet, "/products/search?q=clavier", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeProducts(t, w.Body.String())
	require.Len(t, got, 1)
	assert.Equal(t, "Clavier", got[0].Name)
}

func TestSearchFallsBackToMongoWhenEngineAbsent(t *testing.T) {
	r, _ := newProductRouter(catalogProduct(1, "Clavier", 49.99))

	w := doJSON(r, http.MethodGet, "/products/search?q=clavier", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeProducts(t, w.Body.String()), 1)
}

func TestSearchRequiresQuery(t *testing.T) {
	r, _ := newProductRouter()

	w := doJSON(r, http.MethodGet, "/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductByIDResolvesBothIDForms(t *testing.T) {
	p := catalogProduct(42, "Clavier", 49.99)
	r, _ := newProductRouter(p)

	w := doJSON(r, http.MethodGet, "/products/42", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var byCatalog models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byCatalog))
	assert.Equal(t, p.ID, byCatalog.ID)

	w = doJSON(r, http.MethodGet, "/products/"+p.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var byInternal models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byInternal))
	assert.Equal(t, 42, byInternal.CatalogID)
}

func TestGetProductByIDRejectsMalformedID(t *testing.T) {
	r, _ := newProductRouter()

	w := doJSON(r, http.MethodGet, "/products/pas-un-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductByIDUnknownProduct(t *testing.T) {
	r, _ := newProductRouter()

	w := doJSON(r, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
