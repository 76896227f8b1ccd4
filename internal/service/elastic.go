package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"shopora_back_end/internal/models"
)

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//
// L'index "products" est alimenté par le service catalogue (admin) ;
// ici on ne fait que chercher.
//

type Elastic struct {
	Client *elasticsearch.Client
}

func NewElastic(client *elasticsearch.Client) *Elastic {
	return &Elastic{Client: client}
}

// Search cherche des produits par nom, catégorie ou description
func (e *Elastic) Search(ctx context.Context, query string) ([]models.Product, error) {
	if e.Client == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "category", "description"},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"products"},
		Body:  &buf,
	}
	res, err := req.Do(ctx, e.Client)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var raw map[string]interface{}
		json.NewDecoder(res.Body).Decode(&raw)
		log.Printf("❌ Elasticsearch erreur: %+v", raw)
		return nil, errors.New("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	results := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		results = append(results, hit.Source)
	}

	return results, nil
}
