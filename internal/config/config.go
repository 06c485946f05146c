// internal/config/config.go
//
// Runtime configuration for the server and the terminal game.
//
// Sources, lowest precedence first:
//   1. Built-in defaults.
//   2. A YAML file passed with --config.
//   3. Environment variables (a .env file is loaded into the environment
//      first when present).
//
// Environment variables:
//   PORT, DB_PATH, WORDS_FILE, LOG_LEVEL,
//   GRID_WIDTH, GRID_HEIGHT, GRID_FILLER,
//   DAILY_SALT, JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME,
//   CLIENT_ORIGIN, APP_ENV (=production enables secure cookies)

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordgrid/internal/grid"
)

// Config is the full set of tunables.
type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	WordsFile string `yaml:"words_file"`
	LogLevel  string `yaml:"log_level"`

	Grid GridConfig `yaml:"grid"`

	DailySalt      string `yaml:"daily_salt"`
	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiresDays int    `yaml:"jwt_expires_days"`
	CookieName     string `yaml:"cookie_name"`
	ClientOrigin   string `yaml:"client_origin"`
	Production     bool   `yaml:"production"`
}

// GridConfig is the YAML/env form of grid.Config.
type GridConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Filler string `yaml:"filler"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:           "5175",
		DBPath:         "./data/wordgrid.db",
		LogLevel:       "info",
		Grid:           GridConfig{Width: 10, Height: 10, Filler: "."},
		DailySalt:      "local_dev_salt",
		JWTSecret:      "dev_secret_change_me",
		JWTExpiresDays: 14,
		CookieName:     "wordgrid_token",
		ClientOrigin:   "http://localhost:5173",
	}
}

// Load builds a Config from defaults, the optional YAML file at path, and
// the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return c, err
	}
	if _, err := c.GridConfig(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(k string, dst *string) {
		if v, ok := lookup(k); ok && v != "" {
			*dst = v
		}
	}
	num := func(k string, dst *int) error {
		v, ok := lookup(k)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", k, err)
		}
		*dst = n
		return nil
	}

	str("PORT", &c.Port)
	str("DB_PATH", &c.DBPath)
	str("WORDS_FILE", &c.WordsFile)
	str("LOG_LEVEL", &c.LogLevel)
	str("GRID_FILLER", &c.Grid.Filler)
	str("DAILY_SALT", &c.DailySalt)
	str("JWT_SECRET", &c.JWTSecret)
	str("COOKIE_NAME", &c.CookieName)
	str("CLIENT_ORIGIN", &c.ClientOrigin)
	if v, ok := lookup("APP_ENV"); ok {
		c.Production = v == "production"
	}
	for k, dst := range map[string]*int{
		"GRID_WIDTH":       &c.Grid.Width,
		"GRID_HEIGHT":      &c.Grid.Height,
		"JWT_EXPIRES_DAYS": &c.JWTExpiresDays,
	} {
		if err := num(k, dst); err != nil {
			return err
		}
	}
	return nil
}

// GridConfig converts and validates the grid settings.
func (c Config) GridConfig() (grid.Config, error) {
	if len(c.Grid.Filler) != 1 {
		return grid.Config{}, fmt.Errorf("%w: filler must be one character, got %q", grid.ErrBadConfig, c.Grid.Filler)
	}
	g := grid.Config{Width: c.Grid.Width, Height: c.Grid.Height, Filler: c.Grid.Filler[0]}
	if err := g.Validate(); err != nil {
		return grid.Config{}, err
	}
	return g, nil
}
