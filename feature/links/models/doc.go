// Package models defines the gorm models of the association tables.
//
// Every table carries a surrogate id, the parent and child columns, a soft-delete
// flag and timestamps, with a unique index over (parent, child). A pair is never
// inserted twice: unlinking sets is_deleted and linking again revives the row.
package models
