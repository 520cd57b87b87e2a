package models

import "time"

// AuditEntry is one row of the audit trail joined to the acting user's
// name. Rows are append-only; the timestamp is assigned by the server at
// insert time.
type AuditEntry struct {
	Timestamp time.Time
	Username  string
	Action    string
}
