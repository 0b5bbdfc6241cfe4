package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in sync:
	// - defaults in New and the key list in setDefaults (load.go)
	// - flag names in internal/flags and their ConfigKeys entries
	API     API     `mapstructure:"api" yaml:"api"`
	Runtime Runtime `mapstructure:"runtime" yaml:"runtime"`
	Breaker Breaker `mapstructure:"breaker" yaml:"breaker"`
	Server  Server  `mapstructure:"server" yaml:"server"`
	Output  Output  `mapstructure:"output" yaml:"output"`
}

type API struct {
	// BaseURL is the root of the task service REST API (see --base-url).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Token is an optional bearer token (see --token). Never written back out.
	Token string `mapstructure:"token" yaml:"-"`

	// Timeout bounds each HTTP call (see --api-timeout). 0 means no bound.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type Runtime struct {
	// MaxInFlight caps concurrent edge calls in one batch (see --max-in-flight).
	// 0 means unbounded.
	MaxInFlight int `mapstructure:"max_in_flight" yaml:"max_in_flight"`

	// Timeout bounds a whole CLI batch run (see --timeout). Must be > 0.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Timezone is sent with date-relative queries (see --timezone).
	// Must be an IANA zone name.
	Timezone string `mapstructure:"timezone" yaml:"timezone"`

	// Verbose keeps full error strings and enables debug logging.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

type Breaker struct {
	// Enabled guards task service calls with a circuit breaker (see --breaker).
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// FailureThreshold is the failure ratio, in (0, 1], that opens the breaker.
	FailureThreshold float64 `mapstructure:"failure_threshold" yaml:"failure_threshold"`

	// MinRequests is the sample size before the ratio is considered.
	MinRequests uint32 `mapstructure:"min_requests" yaml:"min_requests"`

	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration `mapstructure:"open_timeout" yaml:"open_timeout"`
}

type Server struct {
	// Transport is how the MCP server is reached (see --transport).
	// Allowed values: stdio, http.
	Transport string `mapstructure:"transport" yaml:"transport"`

	// Addr is the listen address for the http transport (see --addr).
	Addr string `mapstructure:"addr" yaml:"addr"`

	// Tools selects the exposed tools as a comma-separated list of names
	// (see --tools). Empty exposes every tool.
	Tools string `mapstructure:"tools" yaml:"tools"`
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string `mapstructure:"console_format" yaml:"console_format"`

	// Out writes structured output to this path (see --out).
	Out string `mapstructure:"out" yaml:"out,omitempty"`

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string `mapstructure:"out_format" yaml:"out_format,omitempty"`

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string `mapstructure:"emit" yaml:"emit,omitempty"`

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool `mapstructure:"no_console" yaml:"no_console"`
}

const DefaultBaseURL = "http://localhost:9001"

func New() *Config {
	return &Config{
		API: API{
			BaseURL: DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Runtime: Runtime{
			Timeout:  2 * time.Minute,
			Timezone: defaultTimezone(),
		},
		Breaker: Breaker{
			FailureThreshold: 0.8,
			MinRequests:      10,
			OpenTimeout:      30 * time.Second,
		},
		Server: Server{
			Transport: "stdio",
			Addr:      ":8080",
		},
		Output: Output{
			ConsoleFormat: "text",
		},
	}
}

// defaultTimezone is TZ when it names a loadable zone, otherwise UTC.
func defaultTimezone() string {
	if tz := strings.TrimSpace(os.Getenv("TZ")); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	return "UTC"
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Output.Emit = splitCommaList(c.Output.Emit)
	c.Server.Tools = strings.Join(splitCommaList([]string{c.Server.Tools}), ",")

	// Task service
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		return errors.New("--base-url must not be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid --base-url value %q: expected an http(s) URL", c.API.BaseURL)
	}
	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.Timeout < 0 {
		return errors.New("--api-timeout must be >= 0")
	}

	// Runtime validation
	if c.Runtime.MaxInFlight < 0 {
		return errors.New("--max-in-flight must be >= 0")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	c.Runtime.Timezone = strings.TrimSpace(c.Runtime.Timezone)
	if c.Runtime.Timezone == "" {
		c.Runtime.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(c.Runtime.Timezone); err != nil {
		return fmt.Errorf("invalid --timezone value %q: %w", c.Runtime.Timezone, err)
	}

	// Breaker validation
	if c.Breaker.Enabled {
		if c.Breaker.FailureThreshold <= 0 || c.Breaker.FailureThreshold > 1 {
			return errors.New("breaker.failure_threshold must be in (0, 1]")
		}
		if c.Breaker.OpenTimeout <= 0 {
			return errors.New("breaker.open_timeout must be > 0")
		}
	}

	// Server validation
	c.Server.Transport = normalizeEnumValue(c.Server.Transport)
	if c.Server.Transport == "" {
		c.Server.Transport = "stdio"
	}
	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		return fmt.Errorf("unsupported --transport: %s (must be one of: stdio, http)", c.Server.Transport)
	}
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	if c.Server.Transport == "http" && c.Server.Addr == "" {
		return errors.New("--addr is required with --transport http")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for i, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", v)
		}
		c.Output.Emit[i] = v
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
