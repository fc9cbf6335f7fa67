// Package links manages the many-to-many associations of the travel catalogue.
//
// Five relationship kinds are registered: hotel-amenity, transport-service-feature,
// restaurant-dietary-option, activity-restriction and activity-additional-info. Each maps
// to an association table with a soft-delete flag (see the models package).
//
// Every mutation goes through the reconciler in core/reconcile: the service loads the
// baseline of a parent, diffs it against the desired child ids and dispatches one create
// or delete per difference. Partial failures are returned in the Report with status
// "partial" (HTTP 207), never as an error.
//
// # Components
//
//   - Store: gorm association store. Links are revived rather than re-inserted.
//   - Service: reads (cached per kind), reconciliation, schema check, history.
//   - Archive: optional JSON report archive on object storage.
//   - Import / Export: xlsx workbooks of (parent id, child id) rows.
//   - Handler: fiber routes under /links.
package links
