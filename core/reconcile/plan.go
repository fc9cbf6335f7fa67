package reconcile

import (
	"cmp"
	"slices"
)

// Diff computes the plan that turns baseline into desired.
// Both inputs are treated as sets: order is ignored and duplicates collapse to one member.
func Diff[C cmp.Ordered](baseline, desired []C) Plan[C] {
	before := newSet(baseline)
	after := newSet(desired)

	plan := Plan[C]{
		ToAdd:     []C{},
		ToRemove:  []C{},
		Unchanged: []C{},
	}

	for id := range after {
		if _, ok := before[id]; ok {
			plan.Unchanged = append(plan.Unchanged, id)
		} else {
			plan.ToAdd = append(plan.ToAdd, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			plan.ToRemove = append(plan.ToRemove, id)
		}
	}

	// Map iteration is random; sort for deterministic plans and logs.
	slices.Sort(plan.ToAdd)
	slices.Sort(plan.ToRemove)
	slices.Sort(plan.Unchanged)

	return plan
}

// Dedupe returns the distinct ids of the input in ascending order.
func Dedupe[C cmp.Ordered](ids []C) []C {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func newSet[C comparable](ids []C) map[C]struct{} {
	set := make(map[C]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// validateChildren rejects zero-valued child ids.
func validateChildren[C cmp.Ordered](ids []C) error {
	var zero C
	for _, id := range ids {
		if id == zero {
			return ErrInvalidChild
		}
	}
	return nil
}
