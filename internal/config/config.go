package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type (
	Config struct {
		HTTP
		Database
		Logging
		Catalog
		Covers
		Scheduler
		Demo
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Driver          string // sqlite, postgres or mysql
		DSN             string // connection string; for sqlite a file path
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		SlowQuery       time.Duration // queries slower than this are logged as warnings
	}
	Logging struct {
		Level  string
		Format string // json or console
	}
	Catalog struct {
		SectionSize     int    // books per home page section
		DefaultMemberID uint   // member used when a request carries none
		DefaultSort     string // sort key for category pages
	}
	Covers struct {
		Dir string // cover files and downloaded covers; empty disables /cover
	}
	Scheduler struct {
		StatsEnabled  bool
		StatsSchedule string // Cron format: "*/5 * * * *" = every 5 minutes
	}
	Demo struct {
		Enabled bool // block catalog writes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

// NewConfig reads the configuration from the environment.
func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_dsn", DefaultDatabasePath)
	v.SetDefault("database_max_open_conns", 10)
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_conn_max_lifetime", "30m")
	v.SetDefault("database_slow_query", "200ms")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("catalog_section_size", DefaultSectionSize)
	v.SetDefault("catalog_default_member_id", 1)
	v.SetDefault("catalog_default_sort", "popular")

	v.SetDefault("covers_dir", DefaultCoversDir)

	v.SetDefault("catalog_stats_enabled", true)
	v.SetDefault("catalog_stats_schedule", "*/5 * * * *")

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Driver:          strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:             v.GetString("DATABASE_DSN"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
			SlowQuery:       v.GetDuration("DATABASE_SLOW_QUERY"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Catalog: Catalog{
			SectionSize:     v.GetInt("CATALOG_SECTION_SIZE"),
			DefaultMemberID: v.GetUint("CATALOG_DEFAULT_MEMBER_ID"),
			DefaultSort:     v.GetString("CATALOG_DEFAULT_SORT"),
		},
		Covers: Covers{
			Dir: v.GetString("COVERS_DIR"),
		},
		Scheduler: Scheduler{
			StatsEnabled:  v.GetBool("CATALOG_STATS_ENABLED"),
			StatsSchedule: v.GetString("CATALOG_STATS_SCHEDULE"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}

// Validate reports every configuration problem at once so startup can fail
// with a single diagnostic.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not supported (want sqlite, postgres or mysql)", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("DATABASE_DSN must be set"))
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		errs = append(errs, errors.New("database pool sizes must not be negative"))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.HTTP.Port))
	}
	if c.Catalog.SectionSize <= 0 {
		errs = append(errs, fmt.Errorf("CATALOG_SECTION_SIZE must be positive, got %d", c.Catalog.SectionSize))
	}
	if c.Catalog.DefaultMemberID == 0 {
		errs = append(errs, errors.New("CATALOG_DEFAULT_MEMBER_ID must be set"))
	}
	if c.Scheduler.StatsEnabled {
		if _, err := cron.ParseStandard(c.Scheduler.StatsSchedule); err != nil {
			errs = append(errs, fmt.Errorf("CATALOG_STATS_SCHEDULE %q: %w", c.Scheduler.StatsSchedule, err))
		}
	}

	return errors.Join(errs...)
}
