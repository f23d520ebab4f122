package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileName is the audit log name inside the data directory.
const FileName = "audit.jsonl"

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Operation names.
const (
	OpDrawerCreate = "drawer-create"
	OpDrawerRemove = "drawer-remove"
	OpItemAdd      = "item-add"
	OpItemRemove   = "item-remove"
	OpSearch       = "search"
	OpImport       = "import"
	OpShell        = "shell"
	OpUnlockFailed = "unlock-failed"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	Session   string `json:"session"`
	Operation string `json:"op"`

	// Totals after the operation. Omitted for read-only operations.
	Drawers int `json:"drawers,omitempty"`
	Items   int `json:"items,omitempty"`

	// Matches is the number of search results.
	Matches int  `json:"matches,omitempty"`
	Forced  bool `json:"forced,omitempty"`
}

// NewEntry returns an entry with the identifying fields set.
func NewEntry(user, session, op string) Entry {
	return Entry{User: user, Session: session, Operation: op}
}

// Log appends an entry to the audit log in dataDir.
// Failures are ignored; an operation never fails because auditing did.
func Log(dataDir string, entry Entry) {
	if dataDir == "" {
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	f, err := os.OpenFile(LogPath(dataDir), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file in dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// ReadEntries reads all entries from the audit log in dataDir.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(dataDir string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(dataDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
