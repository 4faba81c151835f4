// Package config collects the environment-derived settings of the calyx
// binary. The commands combine Debug with their -debug flag: debug output
// is on when either one is set.
package config

import "github.com/caarlos0/env/v6"

// Config holds session settings.
type Config struct {
	// Debug enables compiler stepping messages and the VM instruction
	// trace, same as the -debug flag.
	Debug bool `env:"CALYX_DEBUG" envDefault:"false"`

	// Prompt is the primary REPL prompt.
	Prompt string `env:"CALYX_PROMPT" envDefault:">>> "`
}

// FromEnv parses the CALYX_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
