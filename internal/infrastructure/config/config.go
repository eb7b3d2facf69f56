package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Gray Logic panel.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Panel   PanelConfig   `yaml:"panel"`
	Core    CoreConfig    `yaml:"core"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// PanelConfig contains panel-local settings.
type PanelConfig struct {
	// ClientID identifies this panel to the broker and in presence topics.
	ClientID string `yaml:"client_id"`

	// TickInterval is the presentation tick period in milliseconds.
	// Each tick drains the event queues once.
	TickInterval int `yaml:"tick_interval"`

	// StateQueueSize and SceneQueueSize bound the lossy event queues.
	StateQueueSize int `yaml:"state_queue_size"`
	SceneQueueSize int `yaml:"scene_queue_size"`
}

// CoreConfig contains Gray Logic Core connection settings.
type CoreConfig struct {
	// URL is the base URL of the Core REST API.
	URL string `yaml:"url"`

	// PanelToken authenticates this panel to Core (X-Panel-Token header).
	PanelToken string `yaml:"panel_token"`

	// RoomID is the room this panel displays and controls.
	RoomID string `yaml:"room_id"`

	// Timeout bounds each boot-time HTTP call, in seconds.
	Timeout int `yaml:"timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	TLS  bool   `yaml:"tls"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// APIConfig contains the local status/diagnostics HTTP server settings.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// A missing config file is not an error: wall panels are often deployed
// with environment variables only, and a panel with no Core credentials
// at all still boots into demo mode. Parse and validation failures are
// errors.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Panel: PanelConfig{
			ClientID:       "retro-panel",
			TickInterval:   50,
			StateQueueSize: 64,
			SceneQueueSize: 16,
		},
		Core: CoreConfig{
			URL:     "http://localhost:8090",
			Timeout: 10,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host: "localhost",
				Port: 1883,
			},
			QoS: 0,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		API: APIConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    8091,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies GRAYLOGIC_* environment variables.
// The variable names match the ones the panel firmware has always used.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRAYLOGIC_URL"); v != "" {
		cfg.Core.URL = v
	}
	if v := os.Getenv("GRAYLOGIC_TOKEN"); v != "" {
		cfg.Core.PanelToken = v
	}
	if v := os.Getenv("GRAYLOGIC_ROOM"); v != "" {
		cfg.Core.RoomID = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("GRAYLOGIC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Panel.ClientID == "" {
		errs = append(errs, "panel.client_id is required")
	}
	if c.Panel.TickInterval < 1 {
		errs = append(errs, "panel.tick_interval must be at least 1ms")
	}
	if c.Panel.StateQueueSize < 1 || c.Panel.SceneQueueSize < 1 {
		errs = append(errs, "panel queue sizes must be at least 1")
	}
	if c.Core.URL == "" {
		errs = append(errs, "core.url is required")
	}
	if c.Core.Timeout < 1 {
		errs = append(errs, "core.timeout must be at least 1 second")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}
	if c.API.Enabled && (c.API.Port < 1 || c.API.Port > 65535) {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// HasCoreCredentials reports whether enough configuration is present to
// attempt a live boot: both the panel token and the target room id.
// Without them the boot sequencer goes straight to fallback.
func (c *Config) HasCoreCredentials() bool {
	return c.Core.PanelToken != "" && c.Core.RoomID != ""
}

// CoreTimeout returns the boot-time HTTP timeout as a Duration.
func (c *Config) CoreTimeout() time.Duration {
	return time.Duration(c.Core.Timeout) * time.Second
}

// TickIntervalDuration returns the presentation tick period as a Duration.
func (c *Config) TickIntervalDuration() time.Duration {
	return time.Duration(c.Panel.TickInterval) * time.Millisecond
}
