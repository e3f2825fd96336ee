package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	ManifestPath string `envconfig:"MANIFEST_PATH" default:"genre_constellation_manifest.json"`
	ProfilesDir  string `envconfig:"PROFILES_DIR" default:"profiles"`

	DryRun bool `envconfig:"DRY_RUN" default:"false"`
	Backup bool `envconfig:"BACKUP" default:"false"`
	Debug  bool `envconfig:"DEBUG" default:"false"`

	// Reports are only persisted when DATABASE_URL is set.
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DatabaseName string `envconfig:"DATABASE_NAME" default:"genre-constellation"`
}

func NewConfig() (*Config, error) {
	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseURL != ""
}
