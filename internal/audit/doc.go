// Package audit records which operations ran against a user's closet.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) next to
// the data files:
//
//	<data dir>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Username and the session ID of the process that wrote it
//   - Operation name
//   - Drawer and item totals after the operation
//
// Drawer names, item names and quantities are never written. The inventory
// is encrypted at rest, and the audit log is not.
//
// # Usage
//
//	entry := audit.NewEntry(session.Username, session.ID, audit.OpItemAdd)
//	entry.Drawers, entry.Items = 3, 12
//	audit.Log(dataDir, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// ReadEntries parses the log for display. Malformed entries are silently
// skipped to handle partial writes.
package audit
