package config

const (
	// DefaultDatabasePath is the default sqlite file for the catalog
	DefaultDatabasePath = "./bacadong.db"

	// DefaultCoversDir holds book cover images
	DefaultCoversDir = "./data/covers"

	// DefaultSectionSize is the number of books in each home page section
	DefaultSectionSize = 5
)
