// Package config loads environment-based configuration structs.
//
// Values come from the process environment, optionally seeded from a .env
// file in development. Struct fields declare their variables with env tags:
//
//	type Config struct {
//		BaseURL string `env:"APP_BASE_URL,required"`
//		Debug   bool   `env:"APP_DEBUG" envDefault:"false"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
