package deps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"taskmcp/internal/validate"
)

// Linker runs link and unlink batches: validate, optionally prefetch,
// decompose, fan out, aggregate.
type Linker struct {
	client EdgeClient
	exec   *Executor
	log    *zap.Logger
}

func NewLinker(client EdgeClient, exec *Executor, log *zap.Logger) (*Linker, error) {
	if client == nil {
		return nil, errors.New("edge client is nil")
	}
	if exec == nil {
		return nil, errors.New("executor is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Linker{client: client, exec: exec, log: log}, nil
}

// Link makes primaryID depend on every identifier in otherIDsRaw.
func (l *Linker) Link(ctx context.Context, primaryID, otherIDsRaw string) (BatchReport, error) {
	reqs, err := Decompose(primaryID, otherIDsRaw, KindLink, nil)
	if err != nil {
		return BatchReport{}, err
	}
	return l.run(ctx, reqs, KindLink, false), nil
}

// Unlink removes the listed dependencies of primaryID. An empty or
// whitespace-only otherIDsRaw removes every current dependency: the list is
// fetched first and the unlink calls run against that snapshot. A list made
// only of separators, such as ",", is an empty batch.
func (l *Linker) Unlink(ctx context.Context, primaryID, otherIDsRaw string) (BatchReport, error) {
	if strings.TrimSpace(otherIDsRaw) != "" {
		reqs, err := Decompose(primaryID, otherIDsRaw, KindUnlink, nil)
		if err != nil {
			return BatchReport{}, err
		}
		return l.run(ctx, reqs, KindUnlink, false), nil
	}

	// The prefetch is the only remote call ahead of the fan-out, so reject a
	// malformed identifier before it.
	primary, err := validate.ID(primaryID)
	if err != nil {
		return BatchReport{}, fmt.Errorf("%w: task ID: %v", ErrInvalidIdentifier, err)
	}

	snapshot, err := l.prefetch(ctx, primary)
	if err != nil {
		return BatchReport{}, err
	}

	reqs, err := Decompose(primary, "", KindUnlink, snapshot)
	if err != nil {
		return BatchReport{}, err
	}
	if len(reqs) == 0 {
		l.log.Debug("no dependencies to remove", zap.String("task_id", primary))
		return Aggregate(primary, KindUnlink, true, nil), nil
	}
	return l.run(ctx, reqs, KindUnlink, true), nil
}

func (l *Linker) prefetch(ctx context.Context, primaryID string) (*Snapshot, error) {
	refs, err := l.client.ListDependencies(ctx, primaryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrefetchFailed, err)
	}
	return &Snapshot{Deps: refs}, nil
}

func (l *Linker) run(ctx context.Context, reqs []EdgeRequest, kind Kind, fromSnapshot bool) BatchReport {
	primary := reqs[0].PrimaryID
	l.log.Debug("dispatching edge batch",
		zap.String("kind", string(kind)),
		zap.String("task_id", primary),
		zap.Int("edges", len(reqs)))

	outcomes := l.exec.Execute(ctx, reqs)
	report := Aggregate(primary, kind, fromSnapshot, outcomes)

	l.log.Info("edge batch finished",
		zap.String("kind", string(kind)),
		zap.String("task_id", primary),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report
}
