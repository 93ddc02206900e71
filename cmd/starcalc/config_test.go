package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Valid call LoadConfig defaults", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		cfg, err := LoadConfig()
		require.NoError(t, err, "Expected LoadConfig to not return an error")
		assert.Equal(t, BackendSQLite, cfg.Backend)
		assert.Equal(t, "stars.db", cfg.SQLitePath)
		assert.Empty(t, cfg.Catalogues)
		assert.False(t, cfg.Verbose)
	})

	t.Run("Valid call LoadConfig from environment", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("STARCALC_BACKEND", BackendPostgres)
		viper.SetEnvPrefix("STARCALC")
		viper.AutomaticEnv()

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, BackendPostgres, cfg.Backend)
	})

	t.Run("Invalid call LoadConfig with unknown backend", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("backend", "mysql")

		_, err := LoadConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown backend")
	})
}
