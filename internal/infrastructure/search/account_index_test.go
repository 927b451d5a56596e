package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
)

type fakeES struct {
	mu       sync.Mutex
	paths    []string
	bodies   []string
	response string
	status   int
	queue    []int // per-request statuses, consumed before status
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.paths = append(f.paths, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(b))
	status := f.status
	if len(f.queue) > 0 {
		status, f.queue = f.queue[0], f.queue[1:]
	}
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.response))
}

func newTestIndex(t *testing.T, f *fakeES) *AccountIndex {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewAccountIndex(es, "accounts", nil)
}

func TestAccountIndex_Index(t *testing.T) {
	f := &fakeES{response: `{"result":"created"}`, status: http.StatusCreated}
	idx := newTestIndex(t, f)

	a := &entity.Account{ID: 7, Email: "a@x.com", Name: "A", PasswordHash: "digest", Role: entity.RoleStudent, CreatedAt: time.Now()}
	require.NoError(t, idx.Index(context.Background(), a))

	require.Len(t, f.paths, 1)
	assert.Equal(t, "PUT /accounts/_doc/7", f.paths[0])

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(f.bodies[0]), &doc))
	assert.Equal(t, "a@x.com", doc["email"])
	assert.Equal(t, "Student", doc["role"])
	assert.NotContains(t, f.bodies[0], "digest")
}

func TestAccountIndex_IndexErrorStatus(t *testing.T) {
	f := &fakeES{response: `{"error":"boom"}`, status: http.StatusInternalServerError}
	idx := newTestIndex(t, f)

	err := idx.Index(context.Background(), &entity.Account{ID: 1, Email: "a@x.com", Role: entity.RoleStudent})
	assert.Error(t, err)
}

func TestAccountIndex_Search(t *testing.T) {
	f := &fakeES{response: `{"hits":{"hits":[
		{"_id":"1","_source":{"id":1,"email":"a@x.com","name":"A","role":"Admin"}},
		{"_id":"2","_source":{"id":2,"email":"b@x.com","name":"B","role":"bogus"}}
	]}}`}
	idx := newTestIndex(t, f)

	hits, err := idx.Search(context.Background(), "a@x.com", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(1), hits[0].ID)
	assert.Equal(t, entity.RoleAdmin, hits[0].Role)

	require.Len(t, f.bodies, 1)
	assert.True(t, strings.Contains(f.bodies[0], `"size":10`))
	assert.True(t, strings.Contains(f.bodies[0], "multi_match"))
}

func TestAccountIndex_EnsureIndex(t *testing.T) {
	f := &fakeES{response: `{}`}
	idx := newTestIndex(t, f)
	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Equal(t, []string{"HEAD /accounts"}, f.paths)

	f = &fakeES{response: `{"acknowledged":true}`, queue: []int{http.StatusNotFound, http.StatusOK}}
	idx = newTestIndex(t, f)
	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Equal(t, []string{"HEAD /accounts", "PUT /accounts"}, f.paths)
	assert.Contains(t, f.bodies[1], `"email"`)
	assert.Contains(t, f.bodies[1], `"keyword"`)
}
