package model

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug turns an arbitrary title into a lowercase url-safe slug:
// "Breaking: Go 1.21 Released!" -> "breaking-go-1-21-released".
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalidChars.ReplaceAllString(s, "-")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// EnsureUniqueSlug returns base if no row in table already uses it as column,
// otherwise the first free "-2", "-3", ... suffixed variant. Soft-deleted
// rows count as taken, the underlying unique index covers them too.
func EnsureUniqueSlug(db *gorm.DB, table, column, base string) (string, error) {
	var count int64
	if err := db.Table(table).Unscoped().
		Where(fmt.Sprintf("%s = ?", column), base).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}

	var taken []string
	if err := db.Table(table).Unscoped().
		Where(fmt.Sprintf("%s LIKE ?", column), base+"-%").
		Pluck(column, &taken).Error; err != nil {
		return "", err
	}

	suffixed := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-(\d+)$`)
	max := 1
	for _, slug := range taken {
		m := suffixed.FindStringSubmatch(slug)
		if len(m) != 2 {
			continue
		}
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s-%d", base, max+1), nil
}
