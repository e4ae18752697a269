// internal/directory/search.go
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

const maxSearchSize = 1000

// lawyerDocument is the indexed form of a profile; fee and years are numeric
// so they can be range-filtered.
type lawyerDocument struct {
	models.LawyerProfile
	Fee             int `json:"fee"`
	ExperienceYears int `json:"experienceYears"`
}

// SearchIndex serves the lawyer directory from an Elasticsearch index.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchIndex(client *elasticsearch.Client, index string) *SearchIndex {
	return &SearchIndex{client: client, index: index}
}

func (s *SearchIndex) GetAllProfiles(ctx context.Context) ([]models.LawyerProfile, error) {
	return s.search(ctx, map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"id": "asc"}},
	})
}

func (s *SearchIndex) GetByID(ctx context.Context, id string) (*models.LawyerProfile, error) {
	res, err := s.client.Get(s.index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewLawyerNotFoundError(id)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("get %s: %s", id, res.Status()))
	}

	var doc struct {
		Source lawyerDocument `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	return &doc.Source.LawyerProfile, nil
}

func (s *SearchIndex) List(ctx context.Context, filter models.LawyerFilter) ([]models.LawyerProfile, error) {
	return s.search(ctx, buildFilterQuery(filter))
}

// Create indexes a profile and refreshes so it is immediately searchable.
func (s *SearchIndex) Create(ctx context.Context, p *models.LawyerProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(lawyerDocument{
		LawyerProfile:   *p,
		Fee:             matching.ParseAmount(p.ConsultationFee),
		ExperienceYears: matching.ParseAmount(p.Experience),
	})
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: p.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchQueryFailedError(fmt.Errorf("index %s: %s", p.ID, res.Status()))
	}
	return nil
}

func buildFilterQuery(f models.LawyerFilter) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if f.Specialization != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match": map[string]interface{}{"specialization": f.Specialization},
		})
	}
	if f.Location != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match": map[string]interface{}{"location": f.Location},
		})
	}
	if f.MinRating > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"rating": map[string]interface{}{"gte": f.MinRating}},
		})
	}
	if f.MaxFee > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"fee": map[string]interface{}{"lte": f.MaxFee}},
		})
	}

	if len(mustClauses) == 0 && len(filterClauses) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
		"sort": []interface{}{map[string]interface{}{"rating": "desc"}},
	}
}

func (s *SearchIndex) search(ctx context.Context, query map[string]interface{}) ([]models.LawyerProfile, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	from, size := 0, maxSearchSize
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search %s: %s", s.index, res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source lawyerDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	profiles := make([]models.LawyerProfile, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		profiles = append(profiles, hit.Source.LawyerProfile)
	}
	return profiles, nil
}
