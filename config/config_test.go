package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
categories:
  adult-tees:
    file: data/adult_tees.csv
    date_column: order_date
    value_column: units
  youth-tees:
    file: data/youth_tees.csv
model:
  trend: multiplicative
  seasonal: multiplicative
  period: 12
  default_horizon: 12
cache:
  backend: redis
  ttl: 6h
  redis:
    addr: localhost:6379
    db: 2
    prefix: sales
logging:
  level: debug
  format: json
`)

	c, err := Load(path)
	require.NoError(t, err)

	require.Len(t, c.Categories, 2)
	assert.Equal(t, "data/adult_tees.csv", c.Categories["adult-tees"].File)
	assert.Equal(t, "order_date", c.Categories["adult-tees"].DateColumn)
	assert.Equal(t, "units", c.Categories["adult-tees"].ValueColumn)
	assert.Empty(t, c.Categories["youth-tees"].DateColumn)

	assert.Equal(t, 12, c.Model.Period)
	assert.Equal(t, "redis", c.Cache.Backend)
	assert.Equal(t, 6*time.Hour, c.Cache.TTL)
	assert.Equal(t, "localhost:6379", c.Cache.Redis.Addr)
	assert.Equal(t, 2, c.Cache.Redis.DB)
	assert.Equal(t, "sales", c.Cache.Redis.Prefix)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
categories:
  tees:
    file: data/tees.csv
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "multiplicative", c.Model.Trend)
	assert.Equal(t, "multiplicative", c.Model.Seasonal)
	assert.Equal(t, 12, c.Model.Period)
	assert.Equal(t, 12, c.Model.DefaultHorizon)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.Equal(t, "goforecast", c.Cache.Redis.Prefix)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "categories: [not: a: map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no categories",
			yaml: `
model:
  period: 12
`,
		},
		{
			name: "category without file",
			yaml: `
categories:
  tees: {}
`,
		},
		{
			name: "bad trend",
			yaml: `
categories:
  tees:
    file: data/tees.csv
model:
  trend: damped
`,
		},
		{
			name: "bad seasonal",
			yaml: `
categories:
  tees:
    file: data/tees.csv
model:
  seasonal: none
`,
		},
		{
			name: "horizon too large",
			yaml: `
categories:
  tees:
    file: data/tees.csv
model:
  default_horizon: 37
`,
		},
		{
			name: "unknown backend",
			yaml: `
categories:
  tees:
    file: data/tees.csv
cache:
  backend: memcached
`,
		},
		{
			name: "redis backend without addr",
			yaml: `
categories:
  tees:
    file: data/tees.csv
cache:
  backend: redis
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
categories:
  tees:
    file: data/tees.csv
cache:
  backend: redis
  redis:
    addr: localhost:6379
`)

	t.Setenv("GOFORECAST_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("GOFORECAST_REDIS_PASSWORD", "hunter2")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6380", c.Cache.Redis.Addr)
	assert.Equal(t, "hunter2", c.Cache.Redis.Password)
}
