// Package reconcile provides the relationship reconciler used to edit many-to-many links
// (hotel amenities, restaurant dietary options, transport service features, activity
// restrictions and additional information).
//
// Given a parent id, the set of child ids linked before an edit (the baseline) and the set
// selected after it (the desired set), the reconciler computes the minimal set of link and
// unlink operations and executes them concurrently, collecting every failure instead of
// stopping at the first one.
//
// # Architecture
//
// The reconciler is split into two steps, mirroring a plan/apply workflow:
//
// 1. Diff: a pure set difference producing a Plan (ToAdd, ToRemove, Unchanged). Inputs are
// deduplicated first, so duplicate ids never produce duplicate operations.
//
// 2. Apply: one Operation per planned change, produced by caller supplied factories and
// dispatched as a fan-out/fan-in barrier. The result is an Outcome carrying success counts
// and a FailedOperation for every call that did not succeed.
//
// Reconcile runs both steps. Only malformed input (zero parent id, zero child id, missing
// factories) is returned as an error; partial failure is always reported through the Outcome.
//
// # Baselines
//
// GroupByParent derives baselines from stored association records, and BaselineCache keeps
// grouped baselines in memory for a short TTL, collapsing concurrent loads with singleflight.
//
// # Usage Example
//
//	outcome, err := reconcile.Reconcile(ctx, hotelID, baseline, desired,
//	    func(hotel, amenity uint) reconcile.Operation {
//	        return func(ctx context.Context) error { return store.Create(ctx, rel, hotel, amenity) }
//	    },
//	    func(hotel, amenity uint) reconcile.Operation {
//	        return func(ctx context.Context) error { return store.DeleteByPair(ctx, rel, hotel, amenity) }
//	    },
//	    reconcile.WithConcurrency(8),
//	)
//	if err != nil {
//	    return err // precondition violation
//	}
//	if outcome.Partial() {
//	    log.Warn(outcome.Message())
//	}
package reconcile
