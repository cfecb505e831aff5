package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/senseyeio/duration"
	"github.com/travigo/timetable-maker/pkg/util"
	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

const DefaultConfigFile = "timetable-maker.yml"

const environmentPrefix = "TIMETABLE_"

// Current is the configuration loaded by the binary at startup
var Current *Config

type Config struct {
	API       APIConfig       `yaml:"api"`
	Timezone  string          `yaml:"timezone" validate:"required"`
	Store     StoreConfig     `yaml:"store"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

type APIConfig struct {
	BaseURL      string `yaml:"base_url" validate:"required,url"`
	Limit        int    `yaml:"limit" validate:"gt=0,lte=1000"`
	Timeout      string `yaml:"timeout" validate:"required"`
	SearchWindow string `yaml:"search_window" validate:"required"`
	UserAgent    string `yaml:"user_agent"`
}

type StoreConfig struct {
	Backend   string        `yaml:"backend" validate:"oneof=file redis mongodb sqlite"`
	Key       string        `yaml:"key" validate:"required"`
	Directory string        `yaml:"directory"`
	Redis     RedisConfig   `yaml:"redis"`
	MongoDB   MongoDBConfig `yaml:"mongodb"`
	SQLite    SQLiteConfig  `yaml:"sqlite"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	Database int    `yaml:"database" validate:"gte=0"`
}

type MongoDBConfig struct {
	Connection string `yaml:"connection"`
	Database   string `yaml:"database"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type GeneratorConfig struct {
	Workers int `yaml:"workers" validate:"gte=1,lte=16"`
}

type LogConfig struct {
	Format string `yaml:"format" validate:"omitempty,oneof=console JSON json"`
	Debug  bool   `yaml:"debug"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:      "https://open-bus-stride-api.hasadna.org.il",
			Limit:        300,
			Timeout:      "PT30S",
			SearchWindow: "P7D",
			UserAgent:    "timetable-maker",
		},
		Timezone: "Asia/Jerusalem",
		Store: StoreConfig{
			Backend:   "file",
			Key:       "timetableMakerGroups",
			Directory: defaultDataDirectory(),
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			MongoDB: MongoDBConfig{
				Connection: "mongodb://localhost:27017/",
				Database:   "timetable-maker",
			},
			SQLite: SQLiteConfig{
				Path: filepath.Join(defaultDataDirectory(), "groups.db"),
			},
		},
		Generator: GeneratorConfig{
			Workers: 1,
		},
		Log: LogConfig{
			Format: "console",
		},
	}
}

func defaultDataDirectory() string {
	directory, err := os.UserConfigDir()
	if err != nil {
		return ".timetable-maker"
	}

	return filepath.Join(directory, "timetable-maker")
}

// Load builds the configuration from defaults, the YAML file at path, a .env file and TIMETABLE_* variables.
// A missing file is only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnvironment(util.GetPrefixedEnvironmentVariables(environmentPrefix)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	stringOverrides := map[string]*string{
		"API_BASE_URL":       &c.API.BaseURL,
		"API_TIMEOUT":        &c.API.Timeout,
		"API_SEARCH_WINDOW":  &c.API.SearchWindow,
		"TIMEZONE":           &c.Timezone,
		"STORE_BACKEND":      &c.Store.Backend,
		"STORE_KEY":          &c.Store.Key,
		"STORE_DIRECTORY":    &c.Store.Directory,
		"REDIS_ADDRESS":      &c.Store.Redis.Address,
		"REDIS_PASSWORD":     &c.Store.Redis.Password,
		"MONGODB_CONNECTION": &c.Store.MongoDB.Connection,
		"MONGODB_DATABASE":   &c.Store.MongoDB.Database,
		"SQLITE_PATH":        &c.Store.SQLite.Path,
		"LOG_FORMAT":         &c.Log.Format,
	}
	for key, target := range stringOverrides {
		if value, ok := env[key]; ok {
			*target = value
		}
	}

	intOverrides := map[string]*int{
		"API_LIMIT":      &c.API.Limit,
		"REDIS_DATABASE": &c.Store.Redis.Database,
		"WORKERS":        &c.Generator.Workers,
	}
	for key, target := range intOverrides {
		value, ok := env[key]
		if !ok {
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s%s must be an integer: %w", environmentPrefix, key, err)
		}
		*target = n
	}

	if value, ok := env["DEBUG"]; ok {
		c.Log.Debug = strings.EqualFold(value, "YES") || strings.EqualFold(value, "true")
	}

	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := c.API.SearchWindowDuration(); err != nil {
		return fmt.Errorf("invalid api.search_window %q: %w", c.API.SearchWindow, err)
	}
	if _, err := c.API.TimeoutDuration(); err != nil {
		return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}

	return nil
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (a APIConfig) SearchWindowDuration() (duration.Duration, error) {
	return duration.ParseISO8601(a.SearchWindow)
}

// TimeoutDuration converts the ISO-8601 timeout into a fixed time.Duration
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	d, err := duration.ParseISO8601(a.Timeout)
	if err != nil {
		return 0, err
	}

	var epoch time.Time
	return d.Shift(epoch).Sub(epoch), nil
}
