package config

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIPort  int `yaml:"apiPort"`
	Database struct {
		Type       string `yaml:"type"` // "postgres" or "sqlite"
		Path       string `yaml:"path"` // sqlite file path
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		Name       string `yaml:"name"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		SSLMode    string `yaml:"sslMode"`
		WALMode    bool   `yaml:"walMode"`
		MaxRetries int    `yaml:"maxRetries"`
		RetryDelay int    `yaml:"retryDelay"`
	} `yaml:"database"`
	Auth struct {
		AccessTokenSecret  string `yaml:"accessTokenSecret"`
		RefreshTokenSecret string `yaml:"refreshTokenSecret"`
		AccessTokenTTLMin  int    `yaml:"accessTokenTTLMin"`
		RefreshTokenTTLHrs int    `yaml:"refreshTokenTTLHrs"`
	} `yaml:"auth"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv() // Read in environment variables that match
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind the keys we expect from the environment so they are picked up
	// even when no config file exists.
	for _, key := range []string{
		"apiport",
		"database.type", "database.path",
		"database.host", "database.port", "database.name",
		"database.user", "database.password", "database.sslmode",
		"auth.accesstokensecret", "auth.refreshtokensecret",
		"auth.accesstokenttlmin", "auth.refreshtokenttlhrs",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = 4000
		log.Println("APIPort not specified, using default 4000")
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
		log.Println("Database type not specified, defaulting to sqlite")
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "/data/blogserver.db"
		log.Println("Database path not specified, using default /data/blogserver.db")
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.MaxRetries == 0 {
		cfg.Database.MaxRetries = 5
	}
	if cfg.Database.RetryDelay == 0 {
		cfg.Database.RetryDelay = 5
	}

	// Token lifetimes: 15 minute access tokens, 7 day refresh tokens.
	if cfg.Auth.AccessTokenTTLMin == 0 {
		cfg.Auth.AccessTokenTTLMin = 15
	}
	if cfg.Auth.RefreshTokenTTLHrs == 0 {
		cfg.Auth.RefreshTokenTTLHrs = 7 * 24
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable. The token secrets have
// no defaults: the server cannot authenticate anyone without them, so
// startup must fail instead of limping along with auth disabled.
func (c *Config) Validate() error {
	if c.Auth.AccessTokenSecret == "" {
		return errors.New("auth.accessTokenSecret is required")
	}
	if c.Auth.RefreshTokenSecret == "" {
		return errors.New("auth.refreshTokenSecret is required")
	}
	if c.Auth.AccessTokenSecret == c.Auth.RefreshTokenSecret {
		return errors.New("access and refresh token secrets must differ")
	}
	if c.Database.Type != "sqlite" && c.Database.Type != "postgres" {
		return errors.New("database.type must be sqlite or postgres")
	}
	return nil
}
