package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/MintCofee/tabshare/internal/logging"
	"github.com/MintCofee/tabshare/internal/models"
)

// Service mirrors the tab collection into an elasticsearch index and answers
// free-text queries over it. A nil Service is valid: indexing becomes a no-op
// and the search route is simply not mounted.
type Service struct {
	ES    *elasticsearch.Client
	Index string
}

func NewService(es *elasticsearch.Client, index string) *Service {
	if es == nil {
		return nil
	}
	return &Service{ES: es, Index: index}
}

func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []models.Tab, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "artist^2", "tabContent"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: elasticsearch error: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Tab `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	tabs := make([]models.Tab, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		tabs[i] = hit.Source
	}
	return r.Hits.Total.Value, tabs, nil
}

// IndexTab is best effort: failures are logged and never surfaced to the
// request that triggered them.
func (s *Service) IndexTab(ctx context.Context, tab *models.Tab) {
	if s == nil {
		return
	}
	l := logging.FromContext(ctx)

	data, err := json.Marshal(tab)
	if err != nil {
		l.Error("search_index_failed", "tab_id", tab.ID, "error", err)
		return
	}

	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(data),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(tab.ID), 10)),
	)
	if err != nil {
		l.Error("search_index_failed", "tab_id", tab.ID, "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		l.Error("search_index_failed", "tab_id", tab.ID, "status", res.Status())
	}
}

func (s *Service) DeleteTab(ctx context.Context, id uint) {
	if s == nil {
		return
	}
	l := logging.FromContext(ctx)

	res, err := s.ES.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		l.Error("search_delete_failed", "tab_id", id, "error", err)
		return
	}
	res.Body.Close()
}
