package books

import "strings"

// SortKey selects the ordering of a category listing.
type SortKey string

const (
	SortPopular      SortKey = "popular"
	SortRating       SortKey = "rating"
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortAlphabetical SortKey = "alphabetical"
)

// SortKeys lists the accepted keys in the order the UI offers them.
var SortKeys = []SortKey{SortPopular, SortRating, SortNewest, SortOldest, SortAlphabetical}

// ParseSortKey normalizes s. Unknown keys fall back to SortAlphabetical.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if key == known {
			return key
		}
	}
	return SortAlphabetical
}

// Every ordering ends with b.id so equal keys come back in a stable order.
// Oldest breaks ties by descending id, which makes it the exact reverse of
// newest.
const (
	orderNewest     = "b.publish_date DESC, b.id ASC"
	orderOldest     = "b.publish_date ASC, b.id DESC"
	orderTopRated   = "AVG(bh.rating) IS NULL, AVG(bh.rating) DESC, b.id ASC"
	orderMostViewed = "COUNT(bh.id) DESC, b.id ASC"
	orderTitle      = "b.title ASC, b.id ASC"
)

func (k SortKey) orderClause() string {
	switch k {
	case SortPopular:
		return orderMostViewed
	case SortRating:
		return orderTopRated
	case SortNewest:
		return orderNewest
	case SortOldest:
		return orderOldest
	default:
		return orderTitle
	}
}
