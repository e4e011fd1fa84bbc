package domain

import "time"

// User is a registered account. Identified by a generated ID; the email is
// globally unique (compared case-insensitively).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Doc returns the document representation used for schema validation.
func (u User) Doc() map[string]any {
	return map[string]any{
		"username":      u.Username,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"created_at":    u.CreatedAt,
	}
}

// GeoResult is one geo search executed by a user. The (zip, radius) pair is
// indexed for exact lookup but is not unique.
type GeoResult struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Zip       string    `json:"zip"`
	Radius    int       `json:"radius"`
	CreatedAt time.Time `json:"created_at"`
}

// Doc returns the document representation used for schema validation.
func (g GeoResult) Doc() map[string]any {
	return map[string]any{
		"user_id":    g.UserID,
		"zip":        g.Zip,
		"radius":     g.Radius,
		"created_at": g.CreatedAt,
	}
}

// Business is discovered by the ingestion collaborator within a geo search.
// The geo_result_id reference is advisory (no enforced foreign key).
type Business struct {
	ID          string  `json:"id"`
	GeoResultID string  `json:"geo_result_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	URL         string  `json:"url"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Doc returns the document representation used for schema validation.
func (b Business) Doc() map[string]any {
	return map[string]any{
		"geo_result_id": b.GeoResultID,
		"name":          b.Name,
		"address":       b.Address,
		"url":           b.URL,
		"lat":           b.Lat,
		"lon":           b.Lon,
	}
}

// Job is a posting found on a business site. Titles are full-text indexed.
type Job struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PostedAt    time.Time `json:"posted_at"`
}

// Doc returns the document representation used for schema validation.
func (j Job) Doc() map[string]any {
	return map[string]any{
		"business_id": j.BusinessID,
		"title":       j.Title,
		"description": j.Description,
		"url":         j.URL,
		"posted_at":   j.PostedAt,
	}
}

// JobResult is an ordered snapshot of the jobs matched by one query
// execution. Executions are never deduplicated against each other.
type JobResult struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Jobs       []string  `json:"jobs"`
	QueryTitle string    `json:"query_title"`
	CreatedAt  time.Time `json:"created_at"`
}

// Doc returns the document representation used for schema validation.
func (r JobResult) Doc() map[string]any {
	return map[string]any{
		"user_id":     r.UserID,
		"jobs":        r.Jobs,
		"query_title": r.QueryTitle,
		"created_at":  r.CreatedAt,
	}
}

// Relation links a user to a job (starred or applied). At most one relation
// of each kind exists per (user, job) pair.
type Relation struct {
	UserID    string    `json:"user_id"`
	JobID     string    `json:"job_id"`
	CreatedAt time.Time `json:"timestamp"`
}
