package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/require"
)

func fakeES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestSearchParsesHits(t *testing.T) {
	var gotBody map[string]any

	client := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tabs/_search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_source": {"id": 1, "title": "Enter Sandman", "artist": "Metallica"}},
					{"_source": {"id": 2, "title": "Sad But True", "artist": "Metallica"}}
				]
			}
		}`))
	})

	svc := NewService(client, "tabs")
	total, tabs, err := svc.Search(context.Background(), "metallica", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, tabs, 2)
	require.Equal(t, "Enter Sandman", tabs[0].Title)
	require.Equal(t, uint(2), tabs[1].ID)

	query := gotBody["query"].(map[string]any)["multi_match"].(map[string]any)
	require.Equal(t, "metallica", query["query"])
}

func TestSearchSurfacesESErrors(t *testing.T) {
	client := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	})

	svc := NewService(client, "tabs")
	_, _, err := svc.Search(context.Background(), "q", 0, 10)
	require.Error(t, err)
}

func TestNilServiceIsNoOp(t *testing.T) {
	var svc *Service
	svc.IndexTab(context.Background(), nil)
	svc.DeleteTab(context.Background(), 1)
	require.Nil(t, NewService(nil, "tabs"))
}
