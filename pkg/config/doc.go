// Package config loads typed configuration structs from environment variables.
//
// Fields are described with github.com/caarlos0/env struct tags. A `.env`
// file in the working directory is read once via github.com/joho/godotenv
// before the first parse; additional files can be given per call.
//
//	type Settings struct {
//		Languages []string `env:"I18N_LANGUAGES" envDefault:"en,fr" envSeparator:","`
//	}
//
//	var s Settings
//	config.MustLoad(&s)
//
// Successful results are cached per type and prefix, so packages can call Load
// for the same struct without re-parsing the environment. WithEnvironment
// bypasses both the process environment and the cache.
package config
