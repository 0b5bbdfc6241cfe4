package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskmcp/internal/api"
	"taskmcp/internal/deps"
	"taskmcp/internal/tools"
)

// newEnv connects the tool environment to the configured task service.
// execOpts are applied after the configured executor options.
func (a *app) newEnv(ctx context.Context, execOpts ...deps.ExecutorOption) (*tools.Env, error) {
	cfg := a.cfg
	token, source, err := api.ResolveAuthToken(cfg.API.Token)
	if err != nil {
		return nil, fmt.Errorf("resolve task service token: %w", err)
	}
	a.log.Debug("task service token", zap.String("source", string(source)))

	opts := []api.Option{
		api.WithLogger(a.log),
		api.WithVerbose(cfg.Runtime.Verbose),
		api.WithTimeout(cfg.API.Timeout),
	}
	if cfg.Breaker.Enabled {
		bc := api.DefaultBreakerConfig()
		bc.FailureThreshold = cfg.Breaker.FailureThreshold
		bc.MinRequests = cfg.Breaker.MinRequests
		bc.OpenTimeout = cfg.Breaker.OpenTimeout
		opts = append(opts, api.WithBreaker(bc))
	}
	client, err := api.NewClient(ctx, cfg.API.BaseURL, token, opts...)
	if err != nil {
		return nil, err
	}

	execOpts = append([]deps.ExecutorOption{
		deps.WithMaxInFlight(cfg.Runtime.MaxInFlight),
		deps.WithVerboseErrors(cfg.Runtime.Verbose),
		deps.WithLogger(a.log),
	}, execOpts...)
	exec, err := deps.NewExecutor(client, execOpts...)
	if err != nil {
		return nil, err
	}
	linker, err := deps.NewLinker(client, exec, a.log)
	if err != nil {
		return nil, err
	}

	return &tools.Env{
		API:      client,
		Linker:   linker,
		Timezone: cfg.Runtime.Timezone,
		Verbose:  cfg.Runtime.Verbose,
		Log:      a.log,
	}, nil
}
