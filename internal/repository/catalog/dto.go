package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// businessToHash converts a domain Business into a flat map[string]string for HSET.
func businessToHash(b *domain.Business) map[string]string {
	return map[string]string{
		"geo_result_id": b.GeoResultID,
		"name":          b.Name,
		"address":       b.Address,
		"url":           b.URL,
		"lat":           strconv.FormatFloat(b.Lat, 'f', -1, 64),
		"lon":           strconv.FormatFloat(b.Lon, 'f', -1, 64),
	}
}

// businessFromHash converts a flat hash map back into a domain Business.
func businessFromHash(id string, m map[string]string) (domain.Business, error) {
	lat, err := strconv.ParseFloat(m["lat"], 64)
	if err != nil {
		return domain.Business{}, fmt.Errorf("parse lat of business %s: %w", id, err)
	}
	lon, err := strconv.ParseFloat(m["lon"], 64)
	if err != nil {
		return domain.Business{}, fmt.Errorf("parse lon of business %s: %w", id, err)
	}

	return domain.Business{
		ID:          id,
		GeoResultID: m["geo_result_id"],
		Name:        m["name"],
		Address:     m["address"],
		URL:         m["url"],
		Lat:         lat,
		Lon:         lon,
	}, nil
}

// jobToHash converts a domain Job into a flat map[string]string for HSET.
func jobToHash(j *domain.Job) map[string]string {
	return map[string]string{
		"business_id": j.BusinessID,
		"title":       j.Title,
		"description": j.Description,
		"url":         j.URL,
		"posted_at":   strconv.FormatInt(j.PostedAt.UnixMilli(), 10),
	}
}

// jobFromHash converts a flat hash map back into a domain Job.
func jobFromHash(id string, m map[string]string) (domain.Job, error) {
	millis, err := strconv.ParseInt(m["posted_at"], 10, 64)
	if err != nil {
		return domain.Job{}, fmt.Errorf("parse posted_at of job %s: %w", id, err)
	}

	return domain.Job{
		ID:          id,
		BusinessID:  m["business_id"],
		Title:       m["title"],
		Description: m["description"],
		URL:         m["url"],
		PostedAt:    time.UnixMilli(millis).UTC(),
	}, nil
}
