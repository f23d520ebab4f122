package workflows

import (
	"context"
	"errors"
	"reflect"
	"testing"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
)

func TestAddItem(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	result, err := AddItem(context.Background(), s, AddItemOptions{Drawer: "Top", Name: " pen ", Quantity: "2"})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("Expected 2 items, got %d", result.Count)
	}

	want := []inventory.Item{{Name: "pen", Quantity: 3}, {Name: "pen", Quantity: 2}}
	if !reflect.DeepEqual(s.Snapshot()["Top"], want) {
		t.Errorf("Drawer = %v, want %v", s.Snapshot()["Top"], want)
	}
}

func TestAddItem_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts AddItemOptions
		want error
	}{
		{"ZeroQuantity", AddItemOptions{Drawer: "Top", Name: "pen", Quantity: "0"}, kerrors.ErrInvalidQuantity},
		{"NegativeQuantity", AddItemOptions{Drawer: "Top", Name: "pen", Quantity: "-3"}, kerrors.ErrInvalidQuantity},
		{"WordQuantity", AddItemOptions{Drawer: "Top", Name: "pen", Quantity: "abc"}, kerrors.ErrInvalidQuantity},
		{"EmptyName", AddItemOptions{Drawer: "Top", Name: "", Quantity: "1"}, kerrors.ErrInvalidName},
		{"MissingDrawer", AddItemOptions{Drawer: "Nope", Name: "pen", Quantity: "1"}, kerrors.ErrDrawerNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seed := inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}}
			s := openTestSession(t, newTestVault(t), seed)

			_, err := AddItem(context.Background(), s, tc.opts)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
			if !reflect.DeepEqual(s.Snapshot(), seed) {
				t.Errorf("Store changed after rejected edit: %v", s.Snapshot())
			}
		})
	}
}

func TestRemoveItem_RemovesFirstMatch(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{
		"Top": {{Name: "pen", Quantity: 3}, {Name: "clip", Quantity: 1}, {Name: "pen", Quantity: 7}},
	})

	result, err := RemoveItem(context.Background(), s, RemoveItemOptions{Drawer: "Top", Name: "pen"})
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if result.Item.Quantity != 3 || result.Remaining != 2 {
		t.Errorf("Unexpected result %+v", result)
	}

	want := []inventory.Item{{Name: "clip", Quantity: 1}, {Name: "pen", Quantity: 7}}
	if !reflect.DeepEqual(s.Snapshot()["Top"], want) {
		t.Errorf("Drawer = %v, want %v", s.Snapshot()["Top"], want)
	}
}

func TestRemoveItem_LastItemKeepsDrawer(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	if _, err := RemoveItem(context.Background(), s, RemoveItemOptions{Drawer: "Top", Name: "pen"}); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	items, ok := s.Snapshot()["Top"]
	if !ok || len(items) != 0 {
		t.Errorf("Expected empty drawer to remain, got %v (present %v)", items, ok)
	}
}

func TestRemoveItem_NotFound(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	_, err := RemoveItem(context.Background(), s, RemoveItemOptions{Drawer: "Top", Name: "Pen"})
	if !errors.Is(err, kerrors.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}

	_, err = RemoveItem(context.Background(), s, RemoveItemOptions{Drawer: "Bottom", Name: "pen"})
	if !errors.Is(err, kerrors.ErrDrawerNotFound) {
		t.Errorf("Expected ErrDrawerNotFound, got %v", err)
	}
}
