package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SYNAPTIK_API_BASE_URL.
const EnvPrefix = "SYNAPTIK"

// DiscoverPath returns the config file to read: the explicit path, then
// $SYNAPTIK_CONFIG, then ~/.taskmcp/config.yaml. The default location is
// optional; an explicit one must exist.
func DiscoverPath(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if envPath := os.Getenv(EnvPrefix + "_CONFIG"); envPath != "" {
		return envPath, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskmcp", "config.yaml"), false
	}
	return filepath.Join(home, ".taskmcp", "config.yaml"), false
}

// Load builds the effective configuration. Precedence, highest first: set
// flags, SYNAPTIK_* environment variables, the config file, defaults.
//
// bindings maps config keys to flags; unset flags do not override.
func Load(path string, explicit bool, bindings map[string]*pflag.Flag) (*Config, error) {
	v := viper.New()
	setDefaults(v, New())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, f := range bindings {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag --%s: %w", f.Name, err)
		}
	}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// optional
		default:
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.token", d.API.Token)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("runtime.max_in_flight", d.Runtime.MaxInFlight)
	v.SetDefault("runtime.timeout", d.Runtime.Timeout)
	v.SetDefault("runtime.timezone", d.Runtime.Timezone)
	v.SetDefault("runtime.verbose", d.Runtime.Verbose)
	v.SetDefault("breaker.enabled", d.Breaker.Enabled)
	v.SetDefault("breaker.failure_threshold", d.Breaker.FailureThreshold)
	v.SetDefault("breaker.min_requests", d.Breaker.MinRequests)
	v.SetDefault("breaker.open_timeout", d.Breaker.OpenTimeout)
	v.SetDefault("server.transport", d.Server.Transport)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.tools", d.Server.Tools)
	v.SetDefault("output.console_format", d.Output.ConsoleFormat)
	v.SetDefault("output.out", d.Output.Out)
	v.SetDefault("output.out_format", d.Output.OutFormat)
	v.SetDefault("output.emit", d.Output.Emit)
	v.SetDefault("output.no_console", d.Output.NoConsole)
}

// Marshal renders cfg as YAML in the config file layout. The token is never
// included.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Setting is one effective key/value pair, as shown by "config show --table".
type Setting struct {
	Key   string
	Value string
}

// Settings lists every config key with its effective value, in file order.
// The token is reported as configured or not, never printed.
func (c *Config) Settings() []Setting {
	token := "(not set)"
	if c.API.Token != "" {
		token = "(configured)"
	}
	return []Setting{
		{"api.base_url", c.API.BaseURL},
		{"api.token", token},
		{"api.timeout", c.API.Timeout.String()},
		{"runtime.max_in_flight", strconv.Itoa(c.Runtime.MaxInFlight)},
		{"runtime.timeout", c.Runtime.Timeout.String()},
		{"runtime.timezone", c.Runtime.Timezone},
		{"runtime.verbose", strconv.FormatBool(c.Runtime.Verbose)},
		{"breaker.enabled", strconv.FormatBool(c.Breaker.Enabled)},
		{"breaker.failure_threshold", strconv.FormatFloat(c.Breaker.FailureThreshold, 'f', -1, 64)},
		{"breaker.min_requests", strconv.FormatUint(uint64(c.Breaker.MinRequests), 10)},
		{"breaker.open_timeout", c.Breaker.OpenTimeout.String()},
		{"server.transport", c.Server.Transport},
		{"server.addr", c.Server.Addr},
		{"server.tools", c.Server.Tools},
		{"output.console_format", c.Output.ConsoleFormat},
		{"output.out", c.Output.Out},
		{"output.out_format", c.Output.OutFormat},
		{"output.emit", strings.Join(c.Output.Emit, ",")},
		{"output.no_console", strconv.FormatBool(c.Output.NoConsole)},
	}
}
