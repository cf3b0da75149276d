package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "fridge.db", cfg.DB.SQLitePath)
	assert.Equal(t, "refresh", cfg.Inventory.ExpiryPolicy)
	assert.Equal(t, "https://api.spoonacular.com", cfg.Recipes.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Recipes.Timeout)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Empty(t, cfg.JWT.Secret, "sin secreto la API no exige token")
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "Postgres")
	v.Set("DB_PORT", "6543")
	v.Set("REKOGNITION_MIN_CONFIDENCE", "60.5")
	v.Set("DETECTOR_PROVIDER", "rekognition")
	v.Set("RECIPES_CACHE_TTL_MINUTES", "5")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.InDelta(t, 60.5, cfg.Detector.MinConfidence, 0.0001)
	assert.Equal(t, 5*time.Minute, cfg.Recipes.CacheTTL)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "nevera", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/nevera?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
