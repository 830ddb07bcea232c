// internal/app/system/cache/keys.go
package cache

// Cache keys are built here so the schema lives in one place. Every key
// is tagged with its purpose; raw entity ids are never used as keys, so
// entries for different purposes cannot collide.

const keySeparator = "::"

// KeyAllSuggestions caches the non-archived suggestion list.
func KeyAllSuggestions() string {
	return "suggestions" + keySeparator + "all"
}

// KeyAuthorSuggestions caches the live by-author query for one user.
func KeyAuthorSuggestions(authorID string) string {
	return "suggestions" + keySeparator + "author" + keySeparator + authorID
}

// KeyAllCategories caches the category lookup list.
func KeyAllCategories() string {
	return "categories" + keySeparator + "all"
}

// KeyAllStatuses caches the status lookup list.
func KeyAllStatuses() string {
	return "statuses" + keySeparator + "all"
}
