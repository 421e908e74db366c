package books

import "gorm.io/gorm"

// RatingIndex is the partial unique index holding at most one rated
// book_history row per book and member.
const RatingIndex = "idx_book_history_one_rating"

// EnsureRatingIndex creates RatingIndex. MySQL has no partial indexes, so
// there the rule rests on the row lock RateBook takes.
func EnsureRatingIndex(db *gorm.DB) error {
	if db.Dialector.Name() == "mysql" {
		return nil
	}
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS " + RatingIndex +
		" ON book_history (book_id, member_id) WHERE rating IS NOT NULL").Error
}
