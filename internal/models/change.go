// ABOUTME: ChangeQueueEntry model: the offline outbox for a future sync.
// ABOUTME: One row per (table, record, operation); re-enqueues coalesce.
package models

import "time"

// Operation is the mutation kind a queue entry records.
type Operation string

const (
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

// IsValidOperation checks if a string is a valid queue operation.
func IsValidOperation(s string) bool {
	return s == string(OpInsert) || s == string(OpUpdate) || s == string(OpDelete)
}

// ChangeQueueEntry marks one pending local change. The drainer re-reads
// the live row at send time, so entries carry no payload.
type ChangeQueueEntry struct {
	ID         int64
	TableName  string
	RecordID   string
	Operation  Operation
	EnqueuedAt time.Time
	Synced     bool
}
