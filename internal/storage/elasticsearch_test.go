package storage

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, handler http.HandlerFunc) *ElasticsearchStorage {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewElasticsearchStorageWithURL(client, "neighborhoods", srv.URL+"/")
}

func TestNewNeighborhoodDocument(t *testing.T) {
	plots := 7
	zone := models.ZoneSouth
	doc := NewNeighborhoodDocument(models.Neighborhood{
		Location:       "Adyar",
		HospitalScore:  8,
		CollegeScore:   6,
		MallScore:      4,
		ServicesScore:  2,
		FactoryScore:   3,
		CrimeScore:     1,
		AvailablePlots: &plots,
	}, &zone)

	assert.Equal(t, "Adyar", doc.Location)
	assert.InDelta(t, 7.0, doc.ResidentialScore, 1e-9)
	assert.InDelta(t, 9.0, doc.SafetyScore, 1e-9)
	assert.InDelta(t, 5.0, doc.AmenitiesScore, 1e-9)
	require.NotNil(t, doc.Zone)
	assert.Equal(t, models.ZoneSouth, *doc.Zone)
}

func TestCreateIndexSkipsExisting(t *testing.T) {
	var created bool
	es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			created = true
			w.WriteHeader(http.StatusOK)
		}
	})

	require.NoError(t, es.CreateIndex(context.Background(), `{}`))
	assert.False(t, created)
}

func TestCreateIndex(t *testing.T) {
	var body string
	es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			assert.Equal(t, "/neighborhoods", r.URL.Path)
			b, _ := io.ReadAll(r.Body)
			body = string(b)
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		}
	})

	require.NoError(t, es.CreateIndex(context.Background(), `{"mappings":{}}`))
	assert.Equal(t, `{"mappings":{}}`, body)
}

func TestBulkIndexNeighborhoods(t *testing.T) {
	var lines []string
	es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("refresh"))
		assert.Equal(t, "application/x-ndjson", r.Header.Get("Content-Type"))

		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	})

	docs := []NeighborhoodDocument{
		NewNeighborhoodDocument(models.Neighborhood{Location: "Adyar"}, nil),
		NewNeighborhoodDocument(models.Neighborhood{Location: "T. Nagar"}, nil),
	}
	require.NoError(t, es.BulkIndexNeighborhoods(context.Background(), docs))

	require.Len(t, lines, 4)
	var meta struct {
		Index struct {
			Index string `json:"_index"`
			ID    string `json:"_id"`
		} `json:"index"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &meta))
	assert.Equal(t, "neighborhoods", meta.Index.Index)
	assert.Equal(t, "T. Nagar", meta.Index.ID)
	assert.Contains(t, lines[3], `"location":"T. Nagar"`)
}

func TestBulkIndexReportsItemErrors(t *testing.T) {
	es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":true}`))
	})

	err := es.BulkIndexNeighborhoods(context.Background(), []NeighborhoodDocument{
		NewNeighborhoodDocument(models.Neighborhood{Location: "Adyar"}, nil),
	})
	assert.Error(t, err)
}

func TestBulkIndexEmptyIsNoop(t *testing.T) {
	es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	assert.NoError(t, es.BulkIndexNeighborhoods(context.Background(), nil))
}

func TestFindNeighborhoods(t *testing.T) {
	var query map[string]interface{}
	es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/neighborhoods/_search", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("size"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))

		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"location":"Adyar","zone":"South","safety_score":7.5,"amenities_score":6}}
		]}}`))
	})

	docs, err := es.FindNeighborhoods(context.Background(), []string{" ADYAR ", "Egmore"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Adyar", docs[0].Location)
	require.NotNil(t, docs[0].Zone)
	assert.Equal(t, models.ZoneSouth, *docs[0].Zone)
	assert.InDelta(t, 6.0, docs[0].AmenitiesScore, 1e-9)

	terms := query["query"].(map[string]interface{})["terms"].(map[string]interface{})
	assert.Equal(t, []interface{}{"adyar", "egmore"}, terms["location.normalized"])
}

func TestFindNeighborhoodsNotFound(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"no hits", http.StatusOK, `{"hits":{"hits":[]}}`},
		{"missing index", http.StatusNotFound, `{"error":"index_not_found_exception"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			})

			_, err := es.FindNeighborhoods(context.Background(), []string{"Atlantis"})
			assert.ErrorIs(t, err, ErrNeighborhoodNotFound)
		})
	}
}

func TestFindNeighborhoodsServerError(t *testing.T) {
	es := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`shard failure`))
	})

	_, err := es.FindNeighborhoods(context.Background(), []string{"Adyar"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "shard failure"))
}
