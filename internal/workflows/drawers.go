package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/PolarWolf314/closet/internal/audit"
	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
)

// CreateDrawerOptions configures the create drawer workflow.
type CreateDrawerOptions struct {
	Name string

	// Items fill the new drawer in order. At least one is required.
	Items []inventory.Item

	// Overwrite replaces an existing drawer of the same name. The old
	// contents are discarded, not merged.
	Overwrite bool
}

// CreateDrawerResult contains the outcome of creating a drawer.
type CreateDrawerResult struct {
	Name  string
	Items []inventory.Item

	// Replaced holds the previous contents when an existing drawer was
	// overwritten.
	Replaced []inventory.Item
	Existed  bool
}

// CreateDrawer adds a drawer to the session's closet.
//
// Returns ErrDrawerExists if the drawer exists and Overwrite is false.
// Returns ErrValidation if the name is empty or no valid items are given.
func CreateDrawer(ctx context.Context, s *Session, opts CreateDrawerOptions) (*CreateDrawerResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := inventory.ValidateDrawerName(opts.Name); err != nil {
		return nil, err
	}
	if len(opts.Items) == 0 {
		return nil, fmt.Errorf("%w: a drawer needs at least one item", kerrors.ErrValidation)
	}

	drawers := s.Snapshot()
	previous, existed := drawers[opts.Name]
	if existed && !opts.Overwrite {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrDrawerExists, opts.Name)
	}

	drawers[opts.Name] = slices.Clone(opts.Items)
	if err := s.apply(audit.OpDrawerCreate, drawers, existed); err != nil {
		return nil, err
	}
	s.log.Infof("Created drawer with %d items", len(opts.Items))

	return &CreateDrawerResult{
		Name:     opts.Name,
		Items:    slices.Clone(opts.Items),
		Replaced: previous,
		Existed:  existed,
	}, nil
}

// ShowDrawerResult contains a drawer's contents.
type ShowDrawerResult struct {
	Name  string
	Items []inventory.Item
}

// ShowDrawer returns the items in a drawer.
//
// Returns ErrDrawerNotFound if there is no such drawer.
func ShowDrawer(ctx context.Context, s *Session, name string) (*ShowDrawerResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, ok := s.Snapshot()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrDrawerNotFound, name)
	}
	return &ShowDrawerResult{Name: name, Items: items}, nil
}

// DrawerSummary describes one drawer in a listing.
type DrawerSummary struct {
	Name string
	// Items is the number of item entries.
	Items int
	// Total is the sum of their quantities.
	Total int
}

// ListDrawersResult contains every drawer sorted by name.
type ListDrawersResult struct {
	Drawers []DrawerSummary
}

// ListDrawers summarises the session's closet.
func ListDrawers(ctx context.Context, s *Session) (*ListDrawersResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	drawers := s.Snapshot()
	result := &ListDrawersResult{Drawers: make([]DrawerSummary, 0, len(drawers))}
	for _, name := range drawers.Names() {
		summary := DrawerSummary{Name: name, Items: len(drawers[name])}
		for _, item := range drawers[name] {
			summary.Total += item.Quantity
		}
		result.Drawers = append(result.Drawers, summary)
	}
	return result, nil
}

// RemoveDrawerResult contains the drawer that was removed.
type RemoveDrawerResult struct {
	Name  string
	Items []inventory.Item
}

// RemoveDrawer deletes a drawer and everything in it.
//
// Returns ErrDrawerNotFound if there is no such drawer.
func RemoveDrawer(ctx context.Context, s *Session, name string) (*RemoveDrawerResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	drawers := s.Snapshot()
	items, ok := drawers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrDrawerNotFound, name)
	}

	delete(drawers, name)
	if err := s.apply(audit.OpDrawerRemove, drawers, false); err != nil {
		return nil, err
	}
	s.log.Infof("Removed drawer with %d items", len(items))

	return &RemoveDrawerResult{Name: name, Items: items}, nil
}
