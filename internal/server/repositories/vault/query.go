package vault

import (
	"strings"
)

const (
	// DefaultLimit is the page size used when the caller does not provide one.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// sortColumns is the allow-list of sortable fields, mapping API names to
// columns. Anything outside the list silently falls back to created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"siteName":  "site_name",
	"username":  "username",
	"category":  "category",
	"favorite":  "favorite",
	"email":     "email",
}

// NormalizePage clamps page to at least 1 and limit to [1, MaxLimit],
// substituting DefaultLimit for a missing limit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func orderByClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return "ORDER BY " + column + " " + direction
}

// escapeLike escapes LIKE metacharacters so a search term matches as a
// literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// cleanTags drops empty and whitespace-only tags from a filter list.
func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}
