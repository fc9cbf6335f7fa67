package reconcile

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("reconcile")

// Reconcile diffs baseline against desired and applies the resulting plan.
// It returns an error only for malformed input; individual operation failures are
// reported in the Outcome.
func Reconcile[P comparable, C cmp.Ordered](
	ctx context.Context,
	parent P,
	baseline []C,
	desired []C,
	link Factory[P, C],
	unlink Factory[P, C],
	opts ...Option,
) (*Outcome[C], error) {
	if err := validateChildren(baseline); err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	if err := validateChildren(desired); err != nil {
		return nil, fmt.Errorf("desired: %w", err)
	}

	return Apply(ctx, parent, Diff(baseline, desired), link, unlink, opts...)
}

// Apply executes a plan produced by Diff.
// Every operation is dispatched concurrently and Apply waits for all of them to settle.
func Apply[P comparable, C cmp.Ordered](
	ctx context.Context,
	parent P,
	plan Plan[C],
	link Factory[P, C],
	unlink Factory[P, C],
	opts ...Option,
) (*Outcome[C], error) {
	var zero P
	if parent == zero {
		return nil, ErrInvalidParent
	}
	if link == nil || unlink == nil {
		return nil, ErrMissingFactory
	}
	if err := validateChildren(plan.ToAdd); err != nil {
		return nil, err
	}
	if err := validateChildren(plan.ToRemove); err != nil {
		return nil, err
	}

	o := newOptions(opts)

	ctx, span := tracer.Start(ctx, "Reconcile", trace.WithAttributes(
		attribute.String("reconcile.parent", fmt.Sprint(parent)),
		attribute.Int("reconcile.to_add", len(plan.ToAdd)),
		attribute.Int("reconcile.to_remove", len(plan.ToRemove)),
	))
	defer span.End()

	outcome := &Outcome[C]{Failures: []FailedOperation[C]{}}
	if plan.Empty() {
		return outcome, nil
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}

	settle := func(kind OperationKind, child C, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			outcome.Failures = append(outcome.Failures, FailedOperation[C]{Kind: kind, ChildID: child, Err: err})
			return
		}
		switch kind {
		case OperationAdd:
			outcome.AddedCount++
		case OperationRemove:
			outcome.RemovedCount++
		}
	}

	dispatch := func(kind OperationKind, child C, op Operation) {
		// The function never returns an error so one failure cannot cancel the others.
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				outcome.Incomplete = true
				mu.Unlock()
				settle(kind, child, fmt.Errorf("%w: %v", ErrCanceled, err))
				return nil
			}
			settle(kind, child, run(ctx, kind, child, op, o))
			return nil
		})
	}

	for _, child := range plan.ToAdd {
		dispatch(OperationAdd, child, link(parent, child))
	}
	for _, child := range plan.ToRemove {
		dispatch(OperationRemove, child, unlink(parent, child))
	}
	_ = g.Wait()

	sortFailures(outcome.Failures)

	span.SetAttributes(
		attribute.Int("reconcile.added", outcome.AddedCount),
		attribute.Int("reconcile.removed", outcome.RemovedCount),
		attribute.Int("reconcile.failed", len(outcome.Failures)),
	)
	if !outcome.OK() {
		span.SetStatus(codes.Error, outcome.Message())
	}

	return outcome, nil
}

// run executes a single operation. Once started, an operation is detached from the
// caller's cancellation so it can settle and be counted; only its own timeout applies.
func run[C cmp.Ordered](ctx context.Context, kind OperationKind, child C, op Operation, o options) error {
	if op == nil {
		return errNilOperation
	}

	ctx, span := tracer.Start(context.WithoutCancel(ctx), "Operation", trace.WithAttributes(
		attribute.String("reconcile.kind", string(kind)),
		attribute.String("reconcile.child", fmt.Sprint(child)),
	))
	defer span.End()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	err := op(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// sortFailures orders failures with adds first, then by child id.
func sortFailures[C cmp.Ordered](failures []FailedOperation[C]) {
	slices.SortFunc(failures, func(a, b FailedOperation[C]) int {
		if a.Kind != b.Kind {
			if a.Kind == OperationAdd {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ChildID, b.ChildID)
	})
}
