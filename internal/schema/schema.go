// Package schema is the registry of per-collection document schemas. It is
// the single validation point for every write path, direct or bulk: the
// storage engine itself only stores hashes, so nothing else rejects a
// malformed document.
package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// FieldType is the semantic type a field value must satisfy.
type FieldType string

// Field type constants.
const (
	String  FieldType = "string"
	Int     FieldType = "int64"
	Double  FieldType = "double"
	Time    FieldType = "timestamp"
	Ref     FieldType = "ref"
	RefList FieldType = "ref-list"
)

// FieldSpec declares one required field of a collection.
type FieldSpec struct {
	Name string
	Type FieldType
}

// registry lists the required fields per collection, mirroring the
// per-collection validator rules of the original store. Order matters:
// validation reports the first violation in declaration order.
var registry = map[string][]FieldSpec{
	domain.CollectionUsers: {
		{Name: "username", Type: String},
		{Name: "email", Type: String},
		{Name: "password_hash", Type: String},
		{Name: "created_at", Type: Time},
	},
	domain.CollectionGeoResults: {
		{Name: "user_id", Type: Ref},
		{Name: "zip", Type: String},
		{Name: "radius", Type: Int},
		{Name: "created_at", Type: Time},
	},
	domain.CollectionBusinesses: {
		{Name: "geo_result_id", Type: Ref},
		{Name: "name", Type: String},
		{Name: "address", Type: String},
		{Name: "url", Type: String},
		{Name: "lat", Type: Double},
		{Name: "lon", Type: Double},
	},
	domain.CollectionJobs: {
		{Name: "business_id", Type: Ref},
		{Name: "title", Type: String},
		{Name: "description", Type: String},
		{Name: "url", Type: String},
		{Name: "posted_at", Type: Time},
	},
	domain.CollectionJobResults: {
		{Name: "user_id", Type: Ref},
		{Name: "jobs", Type: RefList},
		{Name: "query_title", Type: String},
		{Name: "created_at", Type: Time},
	},
	domain.CollectionStarredJobs: {
		{Name: "user_id", Type: Ref},
		{Name: "job_id", Type: Ref},
		{Name: "timestamp", Type: Time},
	},
	domain.CollectionAppliedJobs: {
		{Name: "user_id", Type: Ref},
		{Name: "job_id", Type: Ref},
		{Name: "timestamp", Type: Time},
	},
}

// Fields returns the required field specs of a collection, or nil for an
// unknown collection.
func Fields(collection string) []FieldSpec {
	return registry[collection]
}

// Known reports whether a collection has a registered schema.
func Known(collection string) bool {
	_, ok := registry[collection]
	return ok
}

// FieldError reports the first field that violated the schema.
type FieldError struct {
	Collection string
	Field      string
	Expected   FieldType
	Missing    bool
}

func (e *FieldError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s: field %q missing (expected %s)", e.Collection, e.Field, e.Expected)
	}
	return fmt.Sprintf("%s: field %q is not a valid %s", e.Collection, e.Field, e.Expected)
}

func (e *FieldError) Unwrap() error { return domain.ErrValidation }

// Validate checks a document against its collection schema. It fails fast:
// the first missing or mismatched field is returned as a *FieldError and the
// rest of the document is not inspected.
func Validate(collection string, doc map[string]any) error {
	specs, ok := registry[collection]
	if !ok {
		return fmt.Errorf("unknown collection %q: %w", collection, domain.ErrValidation)
	}

	for _, spec := range specs {
		v, present := doc[spec.Name]
		if !present || v == nil {
			return &FieldError{Collection: collection, Field: spec.Name, Expected: spec.Type, Missing: true}
		}
		if !matches(spec.Type, v) {
			return &FieldError{Collection: collection, Field: spec.Name, Expected: spec.Type}
		}
	}

	return nil
}

// matches checks a runtime value against a semantic type. Values may come
// from typed Go code or from json.Unmarshal output, so the numeric and
// timestamp types accept both representations.
func matches(ft FieldType, v any) bool {
	switch ft {
	case String:
		s, ok := v.(string)
		return ok && s != ""
	case Int:
		return isInteger(v)
	case Double:
		return isNumber(v)
	case Time:
		return isTimestamp(v)
	case Ref:
		s, ok := v.(string)
		return ok && s != ""
	case RefList:
		return isRefList(v)
	default:
		return false
	}
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		return n == float64(int64(n))
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	case json.Number:
		return true
	default:
		return false
	}
}

func isTimestamp(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return !t.IsZero()
	case string:
		_, err := time.Parse(time.RFC3339, t)
		return err == nil
	case float64, int64, json.Number:
		// unix millis from a JSON seed file
		return isInteger(v)
	default:
		return false
	}
}

func isRefList(v any) bool {
	switch list := v.(type) {
	case []string:
		for _, s := range list {
			if s == "" {
				return false
			}
		}
		return true
	case []any:
		for _, el := range list {
			s, ok := el.(string)
			if !ok || s == "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}
