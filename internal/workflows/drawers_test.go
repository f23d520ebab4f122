package workflows

import (
	"context"
	"errors"
	"reflect"
	"testing"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
)

func TestCreateDrawer(t *testing.T) {
	s := openTestSession(t, newTestVault(t), nil)
	items := []inventory.Item{{Name: "pen", Quantity: 3}, {Name: "clip", Quantity: 10}}

	result, err := CreateDrawer(context.Background(), s, CreateDrawerOptions{Name: "Top", Items: items})
	if err != nil {
		t.Fatalf("CreateDrawer failed: %v", err)
	}
	if result.Existed {
		t.Error("Drawer should not have existed")
	}
	if !reflect.DeepEqual(s.Snapshot()["Top"], items) {
		t.Errorf("Drawer contents = %v, want %v", s.Snapshot()["Top"], items)
	}
}

func TestCreateDrawer_ExistingWithoutOverwrite(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	_, err := CreateDrawer(context.Background(), s, CreateDrawerOptions{
		Name:  "Top",
		Items: []inventory.Item{{Name: "tape", Quantity: 1}},
	})
	if !errors.Is(err, kerrors.ErrDrawerExists) {
		t.Fatalf("Expected ErrDrawerExists, got %v", err)
	}
	if s.Dirty() {
		t.Error("Rejected create should not dirty the session")
	}
}

func TestCreateDrawer_OverwriteReplaces(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	result, err := CreateDrawer(context.Background(), s, CreateDrawerOptions{
		Name:      "Top",
		Items:     []inventory.Item{{Name: "tape", Quantity: 1}},
		Overwrite: true,
	})
	if err != nil {
		t.Fatalf("CreateDrawer failed: %v", err)
	}
	if !result.Existed || !reflect.DeepEqual(result.Replaced, []inventory.Item{{Name: "pen", Quantity: 3}}) {
		t.Errorf("Expected previous contents in result, got %+v", result)
	}
	want := []inventory.Item{{Name: "tape", Quantity: 1}}
	if !reflect.DeepEqual(s.Snapshot()["Top"], want) {
		t.Errorf("Overwrite should replace, not merge: got %v", s.Snapshot()["Top"])
	}
}

func TestCreateDrawer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts CreateDrawerOptions
		want error
	}{
		{"EmptyName", CreateDrawerOptions{Name: " ", Items: []inventory.Item{{Name: "pen", Quantity: 1}}}, kerrors.ErrInvalidName},
		{"NoItems", CreateDrawerOptions{Name: "Top"}, kerrors.ErrValidation},
		{"BadItem", CreateDrawerOptions{Name: "Top", Items: []inventory.Item{{Name: "pen", Quantity: 0}}}, kerrors.ErrInvalidQuantity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := openTestSession(t, newTestVault(t), nil)
			_, err := CreateDrawer(context.Background(), s, tc.opts)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
			if len(s.Snapshot()) != 0 {
				t.Errorf("Store should be unchanged, got %v", s.Snapshot())
			}
		})
	}
}

func TestShowDrawer(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	result, err := ShowDrawer(context.Background(), s, "Top")
	if err != nil {
		t.Fatalf("ShowDrawer failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Name != "pen" {
		t.Errorf("Unexpected items %v", result.Items)
	}

	if _, err := ShowDrawer(context.Background(), s, "Missing"); !errors.Is(err, kerrors.ErrDrawerNotFound) {
		t.Errorf("Expected ErrDrawerNotFound, got %v", err)
	}
}

func TestListDrawers(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{
		"Top":    {{Name: "pen", Quantity: 3}, {Name: "clip", Quantity: 10}},
		"Bottom": {{Name: "tape", Quantity: 1}},
	})

	result, err := ListDrawers(context.Background(), s)
	if err != nil {
		t.Fatalf("ListDrawers failed: %v", err)
	}
	want := []DrawerSummary{
		{Name: "Bottom", Items: 1, Total: 1},
		{Name: "Top", Items: 2, Total: 13},
	}
	if !reflect.DeepEqual(result.Drawers, want) {
		t.Errorf("ListDrawers() = %+v, want %+v", result.Drawers, want)
	}
}

func TestRemoveDrawer(t *testing.T) {
	s := openTestSession(t, newTestVault(t), inventory.Drawers{
		"Top":    {{Name: "pen", Quantity: 3}},
		"Bottom": {{Name: "tape", Quantity: 1}},
	})

	result, err := RemoveDrawer(context.Background(), s, "Top")
	if err != nil {
		t.Fatalf("RemoveDrawer failed: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("Expected removed contents in result, got %v", result.Items)
	}
	if _, ok := s.Snapshot()["Top"]; ok {
		t.Error("Drawer should be gone")
	}

	if _, err := RemoveDrawer(context.Background(), s, "Top"); !errors.Is(err, kerrors.ErrDrawerNotFound) {
		t.Errorf("Expected ErrDrawerNotFound, got %v", err)
	}
}
