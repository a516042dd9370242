package service

import (
	"sort"

	"restaurant-lookup/maps-svc/internal/domain"
)

// RankByRating returns a copy of records ordered by rating, highest first.
// Unrated records go last; ties keep their input order.
func RankByRating(records []domain.RestaurantRecord) []domain.RestaurantRecord {
	ranked := make([]domain.RestaurantRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Rating, ranked[j].Rating
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	return ranked
}
