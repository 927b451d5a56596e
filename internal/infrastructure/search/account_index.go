package search

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-auth/internal/application"
	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	"github.com/oksasatya/go-lms-auth/pkg/helpers"
)

const accountMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "long"},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "name":       {"type": "text"},
      "role":       {"type": "keyword"},
      "created_at": {"type": "date"}
    }
  }
}`

// AccountIndex stores public account fields in Elasticsearch. Password digests are never indexed.
type AccountIndex struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    *logrus.Logger
}

func NewAccountIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *AccountIndex {
	return &AccountIndex{ES: es, IndexName: index, Logger: logger}
}

// EnsureIndex creates the accounts index with its mapping when missing.
func (x *AccountIndex) EnsureIndex(ctx context.Context) error {
	return helpers.EnsureESIndex(ctx, x.ES, x.IndexName, accountMapping)
}

type accountDoc struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (x *AccountIndex) Index(ctx context.Context, a *entity.Account) error {
	doc := accountDoc{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role.String(), CreatedAt: a.CreatedAt.UTC()}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.IndexName,
		DocumentID: strconv.FormatInt(a.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if x.Logger != nil {
			x.Logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
		}
		return errors.New("es index: " + res.Status())
	}
	return nil
}

// Search performs a simple multi_match search on email and name.
func (x *AccountIndex) Search(ctx context.Context, q string, size int) ([]application.AccountView, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errors.New("es search: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source accountDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]application.AccountView, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		role, err := entity.ParseRole(h.Source.Role)
		if err != nil {
			continue
		}
		out = append(out, application.AccountView{ID: h.Source.ID, Email: h.Source.Email, Name: h.Source.Name, Role: role})
	}
	return out, nil
}

var _ application.AccountIndex = (*AccountIndex)(nil)
