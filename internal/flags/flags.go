package flags

// Package flags defines canonical CLI flag names shared by the cobra wiring
// and the config loader, which binds each flag to its config key.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.API.BaseURL, flags.FlagBaseURL, "", "...")
//	arg := "--" + flags.FlagBaseURL
const (
	// Global
	FlagConfig  = "config"
	FlagVerbose = "verbose"

	// Task service
	FlagBaseURL    = "base-url"
	FlagToken      = "token"
	FlagAPITimeout = "api-timeout"

	// Batches
	FlagDependsOn   = "depends-on"
	FlagMaxInFlight = "max-in-flight"
	FlagTimeout     = "timeout"
	FlagTimezone    = "timezone"

	// Circuit breaker
	FlagBreaker = "breaker"

	// Server
	FlagTransport = "transport"
	FlagAddr      = "addr"
	FlagTools     = "tools"

	// Output
	FlagConsoleFormat = "console-format"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagEmit          = "emit"
	FlagNoConsole     = "no-console"

	// tools list
	FlagQuiet = "quiet"
)

// ConfigKeys maps flags to the config keys they override.
var ConfigKeys = map[string]string{
	FlagVerbose:       "runtime.verbose",
	FlagBaseURL:       "api.base_url",
	FlagToken:         "api.token",
	FlagAPITimeout:    "api.timeout",
	FlagMaxInFlight:   "runtime.max_in_flight",
	FlagTimeout:       "runtime.timeout",
	FlagTimezone:      "runtime.timezone",
	FlagBreaker:       "breaker.enabled",
	FlagTransport:     "server.transport",
	FlagAddr:          "server.addr",
	FlagTools:         "server.tools",
	FlagConsoleFormat: "output.console_format",
	FlagOut:           "output.out",
	FlagOutFormat:     "output.out_format",
	FlagEmit:          "output.emit",
	FlagNoConsole:     "output.no_console",
}
