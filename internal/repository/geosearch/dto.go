package geosearch

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// geoToHash converts a domain GeoResult into a flat map[string]string for HSET.
func geoToHash(g *domain.GeoResult) map[string]string {
	return map[string]string{
		"user_id":    g.UserID,
		"zip":        g.Zip,
		"radius":     strconv.Itoa(g.Radius),
		"created_at": strconv.FormatInt(g.CreatedAt.UnixMilli(), 10),
	}
}

// geoFromHash converts a flat hash map back into a domain GeoResult.
func geoFromHash(id string, m map[string]string) (domain.GeoResult, error) {
	radius, err := strconv.Atoi(m["radius"])
	if err != nil {
		return domain.GeoResult{}, fmt.Errorf("parse radius of geo_result %s: %w", id, err)
	}
	millis, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domain.GeoResult{}, fmt.Errorf("parse created_at of geo_result %s: %w", id, err)
	}

	return domain.GeoResult{
		ID:        id,
		UserID:    m["user_id"],
		Zip:       m["zip"],
		Radius:    radius,
		CreatedAt: time.UnixMilli(millis).UTC(),
	}, nil
}
