package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ztacole/BacaDong/internal/config"
	"github.com/ztacole/BacaDong/internal/database/books"
	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/logging"
)

// SampleMembers are the readers every fresh catalog starts with. The first
// one is the default member for requests that do not name a reader.
var SampleMembers = []entities.Member{
	{Username: "user", DisplayName: "Ursula User"},
	{Username: "admin", DisplayName: "Alice Administrator"},
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the catalog database described by cfg, sizes the pool,
// migrates the schema and seeds the sample members.
func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(logging.CurrentGormLevel(), cfg.SlowQuery),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	database := &Database{DB: db}

	if err := database.Migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := database.seedMembers(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to seed members: %w", err)
	}

	logging.Info().Str("driver", cfg.Driver).Msg("Database initialized")

	return database, nil
}

// Dialector picks the gorm driver for cfg.Driver.
func Dialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		dsn, err := sqliteDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverMySQL:
		return mysql.Open(mysqlDSN(cfg.DSN)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN turns a file path into a DSN with foreign keys enforced and a
// busy timeout, creating the parent directory on first run.
func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", errors.New("sqlite database path is empty")
	}
	if path == ":memory:" {
		path = "file::memory:?cache=shared"
	}
	if strings.HasPrefix(path, "file:") {
		return withParams(path, "_foreign_keys=1", "_busy_timeout=5000"), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create db dir: %w", err)
		}
	}
	return withParams("file:"+path, "_foreign_keys=1", "_busy_timeout=5000"), nil
}

// mysqlDSN makes sure DATE columns scan into time.Time.
func mysqlDSN(dsn string) string {
	return withParams(dsn, "parseTime=true")
}

func withParams(dsn string, params ...string) string {
	for _, p := range params {
		key := p[:strings.Index(p, "=")+1]
		if strings.Contains(dsn, key) {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	return dsn
}

// Migrate creates or updates the catalog tables.
func (d *Database) Migrate() error {
	err := d.DB.AutoMigrate(
		&entities.Category{},
		&entities.Member{},
		&entities.Book{},
		&entities.BookHistory{},
		&entities.BookContent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := books.EnsureRatingIndex(d.DB); err != nil {
		return fmt.Errorf("failed to create rating index: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the pool can still reach the server.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) seedMembers() error {
	for _, member := range SampleMembers {
		var existing entities.Member
		result := d.DB.Where("username = ?", member.Username).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			m := member
			if err := d.DB.Create(&m).Error; err != nil {
				return fmt.Errorf("failed to create member %s: %w", member.Username, err)
			}
			logging.Debug().Str("username", m.Username).Uint("id", m.ID).Msg("Created sample member")
		} else if result.Error != nil {
			return result.Error
		}
	}
	return nil
}
