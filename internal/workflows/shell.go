package workflows

import (
	"context"

	"github.com/PolarWolf314/closet/internal/audit"
)

// ShellResult summarises an interactive session when it ends.
type ShellResult struct {
	// Saved is true when there were changes to write.
	Saved   bool
	Drawers int
	Items   int
}

// EndShell commits the session's edits and records that an interactive
// session took place. The session stays open; callers still Close it.
func EndShell(ctx context.Context, s *Session) (*ShellResult, error) {
	saved := s.Dirty()
	if err := s.Commit(ctx); err != nil {
		return nil, err
	}

	drawers := s.Snapshot()
	result := &ShellResult{
		Saved:   saved,
		Drawers: len(drawers),
		Items:   drawers.ItemCount(),
	}

	entry := audit.Entry{Operation: audit.OpShell, Drawers: result.Drawers, Items: result.Items}
	s.record(entry)
	return result, nil
}
