// Package seed loads initial documents from per-collection JSON files at
// startup. A missing file or directory is not an error; a file whose batch
// fails validation is rejected whole while the remaining files still load.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Mccullahz/go-getta-job/internal/db"
	"github.com/Mccullahz/go-getta-job/internal/domain"
	"github.com/Mccullahz/go-getta-job/internal/logger"
	"github.com/Mccullahz/go-getta-job/internal/metrics"
	"github.com/Mccullahz/go-getta-job/internal/schema"
)

// store is the consumer interface for seeding (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, key string) error
}

// markerKey records a completed seed load so restarts do not re-apply the
// seed files over live data.
const markerKey = domain.KeyPrefix + "seed:loaded"

// collections lists the seedable document collections in dependency order.
// Relation collections are excluded: links are created through the relations
// service, not seeded.
var collections = []string{
	domain.CollectionUsers,
	domain.CollectionGeoResults,
	domain.CollectionBusinesses,
	domain.CollectionJobs,
	domain.CollectionJobResults,
}

// Loader reads seed files and writes their documents to the store.
type Loader struct {
	store store
	dir   string
}

// New creates a seed loader reading from dir.
func New(s store, dir string) *Loader {
	return &Loader{store: s, dir: dir}
}

// Load seeds every collection that has a JSON file in the loader's directory.
// Returns the total number of documents written. A prior completed load
// leaves a marker key; when it is present Load is a no-op, use Reseed to
// load again.
func (l *Loader) Load(ctx context.Context) (int, error) {
	if l.dir == "" {
		return 0, nil
	}
	log := logger.FromContext(ctx)

	if _, err := l.store.Get(ctx, markerKey); err == nil {
		log.Info("seed already loaded, skipping")
		return 0, nil
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		return 0, fmt.Errorf("probe seed marker: %w", err)
	}

	total := 0
	for _, collection := range collections {
		path := filepath.Join(l.dir, collection+".json")
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return total, fmt.Errorf("read seed file %s: %w", path, err)
		}

		n, err := l.loadCollection(ctx, collection, data)
		if err != nil {
			// A bad batch rejects this file only; other files still load.
			log.Warn("seed batch rejected",
				zap.String("collection", collection),
				zap.String("path", path),
				zap.Error(err))
			metrics.SeedDocumentsTotal.WithLabelValues(collection, "rejected").Inc()
			continue
		}

		log.Info("seed batch loaded",
			zap.String("collection", collection),
			zap.Int("documents", n))
		metrics.SeedDocumentsTotal.WithLabelValues(collection, "loaded").Add(float64(n))
		total += n
	}

	if total > 0 {
		stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
		if err := l.store.Set(ctx, markerKey, []byte(stamp)); err != nil {
			return total, fmt.Errorf("write seed marker: %w", err)
		}
	}
	return total, nil
}

// Reseed deletes every seedable collection and loads the seed files again.
// Relation collections are untouched, they are never seeded. Returns the
// number of documents written by the fresh load.
func (l *Loader) Reseed(ctx context.Context) (int, error) {
	if err := l.purge(ctx); err != nil {
		return 0, err
	}
	return l.Load(ctx)
}

// purge removes all documents of the seedable collections, including the
// users' email reservation keys, and clears the seed marker.
func (l *Loader) purge(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, collection := range collections {
		keys, err := l.store.Scan(ctx, domain.Prefix(collection)+"*")
		if err != nil {
			return fmt.Errorf("scan %s: %w", collection, err)
		}
		for _, key := range keys {
			if err := l.store.Del(ctx, key); err != nil {
				return fmt.Errorf("del %s: %w", key, err)
			}
		}
		log.Info("seed purge", zap.String("collection", collection), zap.Int("keys", len(keys)))
	}

	if err := l.store.Del(ctx, markerKey); err != nil {
		return fmt.Errorf("del seed marker: %w", err)
	}
	return nil
}

// loadCollection validates the whole batch first, then writes it. One
// invalid document rejects the entire file.
func (l *Loader) loadCollection(ctx context.Context, collection string, data []byte) (int, error) {
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	for i, doc := range docs {
		if err := schema.Validate(collection, doc); err != nil {
			metrics.ValidationFailuresTotal.WithLabelValues(collection).Inc()
			return 0, fmt.Errorf("document %d: %w", i, err)
		}
	}

	items := make([]db.HashSetItem, 0, len(docs))
	ids := make([]string, 0, len(docs))
	for i, doc := range docs {
		id, _ := doc["id"].(string)
		if id == "" {
			id = domain.NewID()
		}

		fields, err := docToHash(collection, doc)
		if err != nil {
			return 0, fmt.Errorf("document %d: %w", i, err)
		}
		items = append(items, db.HashSetItem{Key: domain.Key(collection, id), Fields: fields})
		ids = append(ids, id)
	}

	if err := l.store.HSetMulti(ctx, items); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}

	if collection == domain.CollectionUsers {
		l.reserveEmails(ctx, docs, ids)
	}
	return len(items), nil
}

// reserveEmails writes the email uniqueness keys for seeded users. A lost
// reservation means the email is already registered; the seeded hash stays
// but the original owner keeps the address.
func (l *Loader) reserveEmails(ctx context.Context, docs []map[string]any, ids []string) {
	log := logger.FromContext(ctx)
	for i, doc := range docs {
		email, _ := doc["email"].(string)
		if email == "" {
			continue
		}
		key := domain.KeyPrefix + "users:email:" + strings.ToLower(strings.TrimSpace(email))
		won, err := l.store.SetNX(ctx, key, []byte(ids[i]))
		if err != nil {
			log.Warn("seed email reservation failed", zap.String("email", email), zap.Error(err))
			continue
		}
		if !won {
			log.Warn("seed email already reserved", zap.String("email", email))
		}
	}
}

// docToHash converts a validated JSON document into flat hash fields using
// the collection's field specs.
func docToHash(collection string, doc map[string]any) (map[string]string, error) {
	specs := schema.Fields(collection)
	fields := make(map[string]string, len(specs))
	for _, spec := range specs {
		s, err := fieldToString(spec.Type, doc[spec.Name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", spec.Name, err)
		}
		fields[spec.Name] = s
	}
	return fields, nil
}

func fieldToString(ft schema.FieldType, v any) (string, error) {
	switch ft {
	case schema.String, schema.Ref:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("expected string, got %T", v)
		}
		return s, nil

	case schema.Int:
		switch n := v.(type) {
		case float64:
			return strconv.FormatInt(int64(n), 10), nil
		case int:
			return strconv.Itoa(n), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		case json.Number:
			return n.String(), nil
		}
		return "", fmt.Errorf("expected integer, got %T", v)

	case schema.Double:
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		case int:
			return strconv.Itoa(n), nil
		}
		return "", fmt.Errorf("expected number, got %T", v)

	case schema.Time:
		return timeToMillis(v)

	case schema.RefList:
		return refListToJSON(v)
	}
	return "", fmt.Errorf("unsupported field type %q", ft)
}

// timeToMillis normalizes the accepted timestamp representations (RFC3339
// string, unix millis number) to a millis string.
func timeToMillis(v any) (string, error) {
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return "", fmt.Errorf("parse timestamp %q: %w", t, err)
		}
		return strconv.FormatInt(parsed.UnixMilli(), 10), nil
	case float64:
		return strconv.FormatInt(int64(t), 10), nil
	case time.Time:
		return strconv.FormatInt(t.UnixMilli(), 10), nil
	}
	return "", fmt.Errorf("expected timestamp, got %T", v)
}

func refListToJSON(v any) (string, error) {
	switch list := v.(type) {
	case []string:
		data, err := json.Marshal(list)
		return string(data), err
	case []any:
		refs := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("list element %d: expected string, got %T", i, item)
			}
			refs[i] = s
		}
		data, err := json.Marshal(refs)
		return string(data), err
	}
	return "", fmt.Errorf("expected string list, got %T", v)
}
