package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"godoor/buzzer"
	"godoor/comm"
	"godoor/controller"
	"godoor/door"
	"godoor/doorbell"
	"godoor/eventpipe"
	"godoor/indicator"
	"godoor/light"
	"godoor/mqtt"
)

// EnvPrefix is prepended to every environment override, e.g. GODOOR_CLIENT_ID.
const EnvPrefix = "GODOOR_"

var errNoClientID = errors.New("client_id missing in config file")

// Config is the main configuration structure for godoor.
type Config struct {
	// Command channel (serial line or stdio)
	Serial comm.Config `yaml:"serial" envPrefix:"SERIAL_"`

	// MQTT connection settings
	MQTT mqtt.Config `yaml:"mqtt"`

	// Hardware
	Door      door.Config      `yaml:"door"`
	Indicator indicator.Config `yaml:"indicator"`
	Buzzer    buzzer.Config    `yaml:"buzzer"`
	Light     light.Config     `yaml:"light"`
	Doorbell  doorbell.Config  `yaml:"doorbell"`

	// Local test input
	EventPipe eventpipe.Config `yaml:"event_pipe"`

	// General settings
	ClientID      string `yaml:"client_id" env:"CLIENT_ID"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	CycleMs       int    `yaml:"cycle_ms" env:"CYCLE_MS"`
	CommandSecret string `yaml:"command_secret" env:"COMMAND_SECRET"`
}

// Cycle returns the control loop period.
func (cfg *Config) Cycle() time.Duration {
	return time.Duration(cfg.CycleMs) * time.Millisecond
}

// Validate fills defaults and rejects configurations the app cannot run with.
func (cfg *Config) Validate() error {
	if cfg.ClientID == "" {
		return errNoClientID
	}
	if cfg.CycleMs <= 0 {
		cfg.CycleMs = int(controller.DefaultCycle / time.Millisecond)
	}
	return nil
}

// LoadConfig reads the YAML config file and applies GODOOR_* environment
// overrides on top. A .env file in the working directory is loaded first
// when present.
func LoadConfig(path string) (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}
	return loadConfig(path, env.Options{Prefix: EnvPrefix})
}

// loadDotenv loads the given files, or .env, into the environment. Missing
// files are fine; unreadable or malformed ones are not.
func loadDotenv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func loadConfig(path string, opts env.Options) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
