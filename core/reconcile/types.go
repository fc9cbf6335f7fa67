package reconcile

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
)

// OperationKind represents the type of link mutation.
type OperationKind string

const (
	// OperationAdd creates a link between the parent and a child.
	OperationAdd OperationKind = "add"
	// OperationRemove deletes the link between the parent and a child.
	OperationRemove OperationKind = "remove"
)

// Operation is a single create or delete request, ready to be dispatched.
type Operation func(ctx context.Context) error

// Factory builds the Operation for one (parent, child) pair.
type Factory[P comparable, C cmp.Ordered] func(parent P, child C) Operation

// Association is a stored link between a parent and a child entity.
type Association[P comparable, C cmp.Ordered] struct {
	// ID is the surrogate id of the association record.
	ID uint `json:"id"`

	// ParentID is the owning entity (e.g., a hotel).
	ParentID P `json:"parent_id"`

	// ChildID is the linked entity (e.g., an amenity).
	ChildID C `json:"child_id"`

	// IsDeleted marks a soft-deleted association.
	IsDeleted bool `json:"is_deleted"`
}

// Plan is the result of diffing a baseline against a desired set.
// All slices are sorted ascending and contain no duplicates.
type Plan[C cmp.Ordered] struct {
	// ToAdd holds children present in the desired set only.
	ToAdd []C `json:"to_add"`

	// ToRemove holds children present in the baseline only.
	ToRemove []C `json:"to_remove"`

	// Unchanged holds children present in both sets. No operation is issued for them.
	Unchanged []C `json:"unchanged"`
}

// Empty reports whether the plan requires no operation.
func (p Plan[C]) Empty() bool {
	return len(p.ToAdd) == 0 && len(p.ToRemove) == 0
}

// Operations returns the number of operations the plan will issue.
func (p Plan[C]) Operations() int {
	return len(p.ToAdd) + len(p.ToRemove)
}

// FailedOperation describes a link or unlink call that did not succeed.
type FailedOperation[C cmp.Ordered] struct {
	// Kind is the type of the failed operation.
	Kind OperationKind

	// ChildID is the child the operation targeted.
	ChildID C

	// Err is the error reported by the store, passed through unchanged.
	Err error
}

// Class returns the failure class of the underlying error.
func (f FailedOperation[C]) Class() FailureClass {
	return Classify(f.Err)
}

// Error implements the error interface so failures can be logged directly.
func (f FailedOperation[C]) Error() string {
	return fmt.Sprintf("%s %v: %v", f.Kind, f.ChildID, f.Err)
}

// Unwrap returns the underlying error.
func (f FailedOperation[C]) Unwrap() error {
	return f.Err
}

// MarshalJSON renders the error as text together with its class.
func (f FailedOperation[C]) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Kind    OperationKind `json:"kind"`
		ChildID C             `json:"child_id"`
		Class   FailureClass  `json:"class"`
		Error   string        `json:"error"`
	}{
		Kind:    f.Kind,
		ChildID: f.ChildID,
		Class:   f.Class(),
		Error:   msg,
	})
}

// Outcome is the settled result of one reconciliation.
type Outcome[C cmp.Ordered] struct {
	// AddedCount is the number of link operations that succeeded.
	AddedCount int `json:"added_count"`

	// RemovedCount is the number of unlink operations that succeeded.
	RemovedCount int `json:"removed_count"`

	// Failures lists every operation that failed, adds first, each group ordered by child id.
	Failures []FailedOperation[C] `json:"failures"`

	// Incomplete is set when the context was cancelled before every operation started.
	// Operations that never ran are reported in Failures wrapping ErrCanceled.
	Incomplete bool `json:"incomplete"`
}

// OK reports whether every operation succeeded.
func (o *Outcome[C]) OK() bool {
	return len(o.Failures) == 0 && !o.Incomplete
}

// Partial reports whether at least one operation failed.
func (o *Outcome[C]) Partial() bool {
	return !o.OK()
}

// Total returns the number of operations that were planned.
func (o *Outcome[C]) Total() int {
	return o.AddedCount + o.RemovedCount + len(o.Failures)
}

// Message returns a short user facing summary of the outcome.
func (o *Outcome[C]) Message() string {
	if o.Total() == 0 {
		return "No changes required"
	}
	if o.OK() {
		return fmt.Sprintf("Links updated successfully (%d added, %d removed)", o.AddedCount, o.RemovedCount)
	}
	return fmt.Sprintf("%d of %d link changes failed", len(o.Failures), o.Total())
}
