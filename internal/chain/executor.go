// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package chain

import (
	"context"
	"log/slog"
	"sync"

	"gitlab.com/driptide/driptide/internal/clock"
	"gitlab.com/driptide/driptide/internal/database"
	"gitlab.com/driptide/driptide/internal/publish"
	"gitlab.com/driptide/driptide/internal/registry"
	"gitlab.com/driptide/driptide/pkg/errors"
	"gitlab.com/driptide/driptide/pkg/types/address"
	"gitlab.com/driptide/driptide/protocol"
)

// Executor executes ledger operations. A single mutex serializes every
// operation: one writer at a time, totally ordered, with no suspension
// point inside an operation.
type Executor struct {
	mu          sync.Mutex
	db          *database.Database
	clock       clock.Clock
	registry    registry.Registry
	newRegistry RegistryFactory
	publisher   publish.Publisher
	logger      *slog.Logger
	executors   map[protocol.OperationType]OperationExecutor
}

// RegistryFactory builds a registry from a source string.
type RegistryFactory func(source string) (registry.Registry, error)

// Options configures an Executor.
type Options struct {
	Database  *database.Database
	Clock     clock.Clock
	Publisher publish.Publisher
	Logger    *slog.Logger

	// Registry overrides the registry built from the ledger's source.
	Registry registry.Registry

	// RegistryFactory defaults to registry.New.
	RegistryFactory RegistryFactory

	// AccrualRate, Operator, and RegistrySource seed the system ledger when
	// the store is empty. An existing ledger is never rewritten from
	// options.
	AccrualRate    uint64
	Operator       address.Address
	RegistrySource string
}

// NewExecutor creates an executor, seeding the system ledger on first run.
func NewExecutor(opts Options) (*Executor, error) {
	if opts.Database == nil {
		return nil, errors.BadRequest.With("missing database")
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Publisher == nil {
		opts.Publisher = publish.NewLog(opts.Logger)
	}
	if opts.RegistryFactory == nil {
		opts.RegistryFactory = registry.New
	}

	x := &Executor{
		db:          opts.Database,
		clock:       opts.Clock,
		newRegistry: opts.RegistryFactory,
		publisher:   opts.Publisher,
		logger:      opts.Logger.With("module", "executor"),
		executors:   newExecutorMap(),
	}

	ledger, err := x.bootstrap(opts)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	x.registry = opts.Registry
	if x.registry == nil {
		x.registry, err = x.newRegistry(ledger.Registry)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("build registry from %q: %w", ledger.Registry, err)
		}
	}

	return x, nil
}

func (x *Executor) bootstrap(opts Options) (*protocol.SystemLedger, error) {
	batch := x.db.Begin(true)
	defer batch.Discard()

	ledger, err := batch.Ledger()
	switch {
	case err == nil:
		return ledger, nil
	case !errors.Is(err, errors.NotFound):
		return nil, errors.UnknownError.Wrap(err)
	}

	rate := opts.AccrualRate
	if rate == 0 {
		rate = protocol.DefaultAccrualRate
	}
	ledger = &protocol.SystemLedger{
		AccrualRate:  rate,
		ReconciledAt: x.clock.Now(),
		Operator:     opts.Operator,
		Registry:     opts.RegistrySource,
	}
	batch.PutLedger(ledger)
	if err := batch.Commit(); err != nil {
		return nil, errors.UnknownError.WithFormat("seed ledger: %w", err)
	}

	x.logger.Info("Seeded system ledger", "accrualRate", ledger.AccrualRate, "operator", ledger.Operator)
	return ledger, nil
}

// Execute executes an operation on behalf of the origin. The operation
// either completes fully and atomically or is rejected in its entirety with
// no state change.
func (x *Executor) Execute(ctx context.Context, origin address.Address, op protocol.Operation) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if op == nil {
		return errors.BadRequest.With("missing operation")
	}
	if origin.IsZero() {
		return errors.BadRequest.With("missing origin")
	}
	exec, ok := x.executors[op.Type()]
	if !ok {
		return errors.BadRequest.WithFormat("unsupported operation %v", op.Type())
	}

	// A registry swap must parse before anything runs, and is applied only
	// after the operation commits
	var swapped registry.Registry
	if body, ok := op.(*protocol.UpdateRegistry); ok {
		var err error
		swapped, err = x.newRegistry(body.Source)
		if err != nil {
			mOperationsFailed.WithLabelValues(op.Type().String()).Inc()
			return errors.BadRequest.WithFormat("registry source %q: %w", body.Source, err)
		}
	}

	batch := x.db.Begin(true)
	defer batch.Discard()

	st, err := x.stateFor(ctx, batch, origin)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	if err := exec.Validate(st, op); err != nil {
		mOperationsFailed.WithLabelValues(op.Type().String()).Inc()
		x.logger.Debug("Operation rejected", "type", op.Type(), "origin", origin, "error", err)
		return err
	}

	if err := batch.Commit(); err != nil {
		mOperationsFailed.WithLabelValues(op.Type().String()).Inc()
		return errors.InternalError.WithFormat("commit %v: %w", op.Type(), err)
	}

	mOperationsExecuted.WithLabelValues(op.Type().String()).Inc()
	mParticipants.Set(float64(st.Ledger.Participants))
	mSettledSupply.Set(float64(st.Ledger.SettledSupply))
	x.logger.Info("Operation executed", "type", op.Type(), "origin", origin)

	// Post-commit steps. Neither rolls back the committed operation.
	switch body := op.(type) {
	case *protocol.UpdateRegistry:
		x.registry = swapped
		x.logger.Info("Swapped attestation registry", "source", body.Source)
	case *protocol.BurnTokens:
		if len(body.Content) > 0 {
			if err := x.publisher.Publish(ctx, origin, body.Content); err != nil {
				x.logger.Error("Publish failed", "origin", origin, "error", err)
			}
		}
	}

	return nil
}

func (x *Executor) stateFor(ctx context.Context, batch *database.Batch, origin address.Address) (*StateManager, error) {
	ledger, err := batch.Ledger()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load ledger: %w", err)
	}

	st := &StateManager{
		batch:      batch,
		registry:   x.registry,
		logger:     x.logger,
		Ctx:        ctx,
		Ledger:     ledger,
		OriginAddr: origin,
		Now:        x.clock.Now(),
	}

	if !origin.IsZero() {
		st.Origin, err = batch.Account(origin)
		if err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
	}
	return st, nil
}
