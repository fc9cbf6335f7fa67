// Package metrics exposes Prometheus collectors for link reconciliation.
//
// Collectors live on a dedicated registry served at /metrics by the start command:
//
//	travel_admin_reconcile_runs_total{kind,status}
//	travel_admin_reconcile_operations_total{kind,operation,result}
//	travel_admin_reconcile_duration_seconds{kind}
package metrics
