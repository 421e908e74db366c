package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.DSN)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, DefaultSectionSize, cfg.Catalog.SectionSize)
	assert.Equal(t, uint(1), cfg.Catalog.DefaultMemberID)
	assert.Equal(t, "popular", cfg.Catalog.DefaultSort)
	assert.True(t, cfg.Scheduler.StatsEnabled)
	assert.False(t, cfg.Demo.Enabled)
	assert.Equal(t, DefaultCoversDir, cfg.Covers.Dir)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "host=localhost user=bacadong dbname=elibrary")
	t.Setenv("DATABASE_SLOW_QUERY", "1s")
	t.Setenv("CATALOG_SECTION_SIZE", "8")
	t.Setenv("CATALOG_DEFAULT_MEMBER_ID", "7")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("LOG_FORMAT", "console")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=bacadong dbname=elibrary", cfg.Database.DSN)
	assert.Equal(t, time.Second, cfg.Database.SlowQuery)
	assert.Equal(t, 8, cfg.Catalog.SectionSize)
	assert.Equal(t, uint(7), cfg.Catalog.DefaultMemberID)
	assert.True(t, cfg.Demo.Enabled)
	assert.Equal(t, "console", cfg.Logging.Format)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Database.Driver = "oracle"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})

	t.Run("rejects empty dsn", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Database.DSN = "  "

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_DSN")
	})

	t.Run("reports every problem", func(t *testing.T) {
		cfg := NewConfig()
		cfg.HTTP.Port = 0
		cfg.Catalog.SectionSize = 0
		cfg.Catalog.DefaultMemberID = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
		assert.Contains(t, err.Error(), "CATALOG_SECTION_SIZE")
		assert.Contains(t, err.Error(), "CATALOG_DEFAULT_MEMBER_ID")
	})

	t.Run("rejects bad cron schedule only when enabled", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Scheduler.StatsSchedule = "every minute"
		require.Error(t, cfg.Validate())

		cfg.Scheduler.StatsEnabled = false
		require.NoError(t, cfg.Validate())
	})
}
