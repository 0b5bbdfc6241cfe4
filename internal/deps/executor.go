package deps

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EdgeClient is the capability the core needs from the task service.
type EdgeClient interface {
	LinkEdge(ctx context.Context, primaryID, otherID string) error
	UnlinkEdge(ctx context.Context, primaryID, otherID string) error
	ListDependencies(ctx context.Context, primaryID string) ([]DependencyRef, error)
}

// Executor fans edge requests out to an EdgeClient and collects their outcomes.
type Executor struct {
	client      EdgeClient
	maxInFlight int
	verbose     bool
	log         *zap.Logger
	observe     func(EdgeOutcome)
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithMaxInFlight caps the number of concurrently dispatched calls. Zero or a
// negative value leaves dispatch unbounded.
func WithMaxInFlight(n int) ExecutorOption {
	return func(e *Executor) {
		e.maxInFlight = n
	}
}

// WithVerboseErrors keeps full error strings in outcome reasons instead of
// the scrubbed form.
func WithVerboseErrors(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.verbose = enabled
	}
}

// WithObserver registers fn to receive each outcome as soon as it is
// terminal, in completion order. fn is called from dispatch goroutines and
// must be safe for concurrent use.
func WithObserver(fn func(EdgeOutcome)) ExecutorOption {
	return func(e *Executor) {
		e.observe = fn
	}
}

// WithLogger sets the logger for dispatch and recovered panics. nil keeps the no-op logger.
func WithLogger(log *zap.Logger) ExecutorOption {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// NewExecutor returns an Executor over client. client must not be nil.
func NewExecutor(client EdgeClient, opts ...ExecutorOption) (*Executor, error) {
	if client == nil {
		return nil, errors.New("edge client is nil")
	}
	e := &Executor{client: client, log: zap.NewNop()}
	for _, apply := range opts {
		if apply != nil {
			apply(e)
		}
	}
	return e, nil
}

// Execute dispatches every request concurrently and returns one outcome per
// request, in input order.
//
// Semantics:
//   - A failing call only affects its own outcome; siblings keep running.
//   - Execute returns after every request has a terminal outcome.
//   - Requests that have not started when ctx is done resolve as
//     TransportFailure ("cancelled") without calling the service.
//   - Nothing is retried.
func (e *Executor) Execute(ctx context.Context, reqs []EdgeRequest) []EdgeOutcome {
	outcomes := make([]EdgeOutcome, len(reqs))
	if len(reqs) == 0 {
		return outcomes
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var g errgroup.Group
	if e.maxInFlight > 0 {
		g.SetLimit(e.maxInFlight)
	}

	for i, req := range reqs {
		// Each goroutine owns outcomes[i]; the slice is read only after Wait.
		g.Go(func() error {
			outcomes[i] = e.dispatch(ctx, req)
			if e.observe != nil {
				e.observe(outcomes[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (e *Executor) dispatch(ctx context.Context, req EdgeRequest) (out EdgeOutcome) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("edge call panicked",
				zap.String("kind", string(req.Kind)),
				zap.String("task_id", req.PrimaryID),
				zap.String("other_id", req.OtherID),
				zap.Any("panic", r))
			out = failed(req, edgeErrorPresentation{kind: TransportFailure, message: fmt.Sprintf("client panic: %v", r)})
		}
	}()

	if err := ctx.Err(); err != nil {
		return failed(req, presentEdgeError(err, false))
	}

	var err error
	switch req.Kind {
	case KindLink:
		err = e.client.LinkEdge(ctx, req.PrimaryID, req.OtherID)
	case KindUnlink:
		err = e.client.UnlinkEdge(ctx, req.PrimaryID, req.OtherID)
	default:
		err = fmt.Errorf("unsupported edge kind %q", req.Kind)
	}
	if err != nil {
		p := presentEdgeError(err, e.verbose)
		e.log.Debug("edge operation failed",
			zap.String("kind", string(req.Kind)),
			zap.String("task_id", req.PrimaryID),
			zap.String("other_id", req.OtherID),
			zap.String("error_kind", string(p.kind)),
			zap.Error(err))
		return failed(req, p)
	}
	return succeeded(req)
}
