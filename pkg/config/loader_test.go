package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langsync/pkg/config"
)

type defaultsConfig struct {
	Name      string   `env:"CFG_TEST_NAME" envDefault:"langsync"`
	Port      int      `env:"CFG_TEST_PORT" envDefault:"8080"`
	Languages []string `env:"CFG_TEST_LANGS" envDefault:"en,fr" envSeparator:","`
}

type successConfig struct {
	Name string `env:"CFG_SUCCESS_NAME" envDefault:"default"`
}

type cachedConfig struct {
	Value string `env:"CFG_CACHED_VALUE" envDefault:"first"`
}

type prefixedConfig struct {
	Value string `env:"VALUE" envDefault:"none"`
}

type requiredConfig struct {
	Required string `env:"CFG_REQUIRED_VALUE,required"`
}

type fileConfig struct {
	Value string `env:"CFG_FILE_VALUE"`
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("CFG_TEST_NAME")
	os.Unsetenv("CFG_TEST_PORT")
	os.Unsetenv("CFG_TEST_LANGS")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "langsync", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"en", "fr"}, cfg.Languages)
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("CFG_SUCCESS_NAME", "from-env")

	var cfg successConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Name)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("CFG_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "first", second.Value, "second load must come from cache")
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("APP_A_VALUE", "a")
	t.Setenv("APP_B_VALUE", "b")

	var a, b prefixedConfig
	require.NoError(t, config.Load(&a, config.WithPrefix("APP_A_")))
	require.NoError(t, config.Load(&b, config.WithPrefix("APP_B_")))

	assert.Equal(t, "a", a.Value)
	assert.Equal(t, "b", b.Value)
}

func TestLoad_Environment(t *testing.T) {
	var cfg defaultsConfig
	err := config.Load(&cfg, config.WithEnvironment(map[string]string{
		"CFG_TEST_NAME":  "isolated",
		"CFG_TEST_LANGS": "de,ar",
	}))
	require.NoError(t, err)

	assert.Equal(t, "isolated", cfg.Name)
	assert.Equal(t, []string{"de", "ar"}, cfg.Languages)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		var cfg *successConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("missing required value", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("missing env file", func(t *testing.T) {
		var cfg fileConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})

	t.Run("must load panics", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() {
			config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
		})
	})
}

func TestLoad_EnvFile(t *testing.T) {
	os.Unsetenv("CFG_FILE_VALUE")
	t.Cleanup(func() { os.Unsetenv("CFG_FILE_VALUE") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFG_FILE_VALUE=from-file\n"), 0o600))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
	assert.Equal(t, "from-file", cfg.Value)
}
