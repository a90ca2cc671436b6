package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"stockflow/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "stockflow.db"),
	}
}

func TestMigrate(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, migrate(cfg, "up", zerolog.Nop()))
	// already at the latest version
	require.NoError(t, migrate(cfg, "up", zerolog.Nop()))
	require.NoError(t, migrate(cfg, "status", zerolog.Nop()))
	require.NoError(t, migrate(cfg, "down", zerolog.Nop()))
}

func TestMigrate_MemoryDriver(t *testing.T) {
	err := migrate(config.DatabaseConfig{Driver: config.DriverMemory}, "up", zerolog.Nop())
	assert.ErrorIs(t, err, errNoSchema)
}

func TestMigrateCommand_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "env.db"))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "up"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.NoError(t, cmd.Execute())
}

func TestMigrateCommand_RejectsUnknownArgument(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "sideways"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestServeCommand_RejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve", "extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
