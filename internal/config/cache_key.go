package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// CourseProblemCountKey returns the cache key for a course's total problem count.
// The catalog is seeded offline and immutable at request time, so counts are
// safe to cache with a TTL.
func (r *CacheKeyStruct) CourseProblemCountKey(courseID string) string {
	return fmt.Sprintf("course:%s:problem_count", courseID)
}

// CourseIDsKey returns the cache key for the list of known course IDs,
// used for not-found diagnostics on problem lookups.
func (r *CacheKeyStruct) CourseIDsKey() string {
	return "catalog:course_ids"
}

var CacheKey = NewCacheKeyStruct()
