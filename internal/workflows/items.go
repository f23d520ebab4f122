package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/PolarWolf314/closet/internal/audit"
	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
)

// AddItemOptions configures the add item workflow. Quantity is the text the
// user typed and is validated here.
type AddItemOptions struct {
	Drawer   string
	Name     string
	Quantity string
}

// AddItemResult contains the outcome of adding an item.
type AddItemResult struct {
	Drawer string
	Item   inventory.Item
	// Count is the number of items in the drawer afterwards.
	Count int
}

// AddItem appends an item to an existing drawer. An item with the same name
// already in the drawer is kept; the new one is added after it.
//
// Returns ErrDrawerNotFound if there is no such drawer.
// Returns ErrValidation if the name is empty or the quantity is not a
// positive whole number.
func AddItem(ctx context.Context, s *Session, opts AddItemOptions) (*AddItemResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := inventory.NewItem(opts.Name, opts.Quantity)
	if err != nil {
		return nil, err
	}

	drawers := s.Snapshot()
	items, ok := drawers[opts.Drawer]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrDrawerNotFound, opts.Drawer)
	}

	drawers[opts.Drawer] = append(items, item)
	if err := s.apply(audit.OpItemAdd, drawers, false); err != nil {
		return nil, err
	}

	return &AddItemResult{Drawer: opts.Drawer, Item: item, Count: len(items) + 1}, nil
}

// RemoveItemOptions configures the remove item workflow.
type RemoveItemOptions struct {
	Drawer string
	Name   string
}

// RemoveItemResult contains the outcome of removing an item.
type RemoveItemResult struct {
	Drawer string
	Item   inventory.Item
	// Remaining is the number of items left in the drawer.
	Remaining int
}

// RemoveItem removes the first item with the given name from a drawer. The
// drawer stays even if it becomes empty.
//
// Returns ErrDrawerNotFound if there is no such drawer.
// Returns ErrItemNotFound if the drawer has no item with that name.
func RemoveItem(ctx context.Context, s *Session, opts RemoveItemOptions) (*RemoveItemResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	drawers := s.Snapshot()
	items, ok := drawers[opts.Drawer]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrDrawerNotFound, opts.Drawer)
	}

	idx := slices.IndexFunc(items, func(it inventory.Item) bool { return it.Name == opts.Name })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q in drawer %q", kerrors.ErrItemNotFound, opts.Name, opts.Drawer)
	}

	removed := items[idx]
	drawers[opts.Drawer] = slices.Delete(items, idx, idx+1)
	if err := s.apply(audit.OpItemRemove, drawers, false); err != nil {
		return nil, err
	}

	return &RemoveItemResult{Drawer: opts.Drawer, Item: removed, Remaining: len(drawers[opts.Drawer])}, nil
}
