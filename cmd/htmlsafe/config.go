package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the CLI defaults. Every field can be overridden by a flag.
type Config struct {
	Safelist              string `env:"HTMLSAFE_SAFELIST" envDefault:"relaxed"`
	PreserveRelativeLinks bool   `env:"HTMLSAFE_PRESERVE_RELATIVE_LINKS" envDefault:"false"`
	BaseURI               string `env:"HTMLSAFE_BASE_URI"`
	Indent                int    `env:"HTMLSAFE_INDENT" envDefault:"2"`
	LogLevel              string `env:"HTMLSAFE_LOG_LEVEL" envDefault:"info"`
	LogFormat             string `env:"HTMLSAFE_LOG_FORMAT" envDefault:"console"`
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file from the working directory when there is one.
func LoadConfig() (Config, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
