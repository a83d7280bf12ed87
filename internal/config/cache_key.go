package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

// CacheKey is the shared cache key builder.
var CacheKey = &CacheKeyStruct{}

// UserSessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// CourseAggregateKey returns the cache key for a course's rating aggregate.
func (r *CacheKeyStruct) CourseAggregateKey(courseID string) string {
	return fmt.Sprintf("course:%s:aggregate", courseID)
}
