package domain

import "fmt"

// KeyPrefix namespaces every key this module writes.
const KeyPrefix = "getta:"

// Collection names, matching the collections of the original document store.
const (
	CollectionUsers       = "users"
	CollectionGeoResults  = "geo_results"
	CollectionBusinesses  = "businesses"
	CollectionJobs        = "jobs"
	CollectionJobResults  = "job_results"
	CollectionStarredJobs = "starred_jobs"
	CollectionAppliedJobs = "applied_jobs"
)

// Key patterns: getta:{collection}:{id}, getta:{collection}:idx, getta:{collection}:

// Key returns the hash key of a record.
func Key(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, collection, id)
}

// IndexName returns the FT index name of a collection.
func IndexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", KeyPrefix, collection)
}

// Prefix returns the key prefix covering all records of a collection.
func Prefix(collection string) string {
	return fmt.Sprintf("%s%s:", KeyPrefix, collection)
}
