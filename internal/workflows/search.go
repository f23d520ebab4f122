package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/closet/internal/audit"
	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"

	"github.com/bmatcuk/doublestar/v4"
)

// SearchOptions configures the search workflow.
type SearchOptions struct {
	// Pattern is an exact item name or a glob such as "pen*" or "{tape,glue}".
	Pattern string

	IgnoreCase bool
}

// Match is one item found by Search.
type Match struct {
	Drawer string
	// Position is the item's zero-based index in the drawer.
	Position int
	Item     inventory.Item
}

// SearchResult lists matches ordered by drawer name, then position.
type SearchResult struct {
	Pattern string
	Matches []Match
}

// Search finds items whose name equals the pattern or matches it as a glob.
//
// Returns ErrValidation if the pattern is empty or not a valid glob.
func Search(ctx context.Context, s *Session, opts SearchOptions) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := opts.Pattern
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: search pattern is empty", kerrors.ErrValidation)
	}
	if opts.IgnoreCase {
		pattern = strings.ToLower(pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid search pattern %q", kerrors.ErrValidation, opts.Pattern)
	}

	drawers := s.Snapshot()
	result := &SearchResult{Pattern: opts.Pattern}
	for _, name := range drawers.Names() {
		for i, item := range drawers[name] {
			candidate := item.Name
			if opts.IgnoreCase {
				candidate = strings.ToLower(candidate)
			}
			if candidate == pattern || globMatch(pattern, candidate) {
				result.Matches = append(result.Matches, Match{Drawer: name, Position: i, Item: item})
			}
		}
	}

	entry := audit.Entry{Operation: audit.OpSearch, Matches: len(result.Matches)}
	s.record(entry)

	return result, nil
}

func globMatch(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
