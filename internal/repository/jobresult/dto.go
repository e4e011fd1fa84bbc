package jobresult

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// resultToHash converts a domain JobResult into a flat map[string]string for
// HSET. The ordered job ID list is stored as a JSON array.
func resultToHash(jr *domain.JobResult) (map[string]string, error) {
	jobs := jr.Jobs
	if jobs == nil {
		jobs = []string{}
	}
	data, err := json.Marshal(jobs)
	if err != nil {
		return nil, fmt.Errorf("marshal jobs of job_result %s: %w", jr.ID, err)
	}

	return map[string]string{
		"user_id":     jr.UserID,
		"jobs":        string(data),
		"query_title": jr.QueryTitle,
		"created_at":  strconv.FormatInt(jr.CreatedAt.UnixMilli(), 10),
	}, nil
}

// resultFromHash converts a flat hash map back into a domain JobResult.
func resultFromHash(id string, m map[string]string) (domain.JobResult, error) {
	var jobs []string
	if err := json.Unmarshal([]byte(m["jobs"]), &jobs); err != nil {
		return domain.JobResult{}, fmt.Errorf("unmarshal jobs of job_result %s: %w", id, err)
	}
	millis, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domain.JobResult{}, fmt.Errorf("parse created_at of job_result %s: %w", id, err)
	}

	return domain.JobResult{
		ID:         id,
		UserID:     m["user_id"],
		Jobs:       jobs,
		QueryTitle: m["query_title"],
		CreatedAt:  time.UnixMilli(millis).UTC(),
	}, nil
}
