package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
)

// Item is a named quantity inside a drawer.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Validate reports whether the item can be stored.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: %w: item name is empty", kerrors.ErrValidation, kerrors.ErrInvalidName)
	}
	if !utf8.ValidString(i.Name) {
		return fmt.Errorf("%w: %w: item name %q is not valid UTF-8", kerrors.ErrValidation, kerrors.ErrInvalidName, i.Name)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("%w: %w: got %d", kerrors.ErrValidation, kerrors.ErrInvalidQuantity, i.Quantity)
	}
	return nil
}

// NewItem builds an item from user input. Surrounding whitespace is trimmed
// from both fields and the quantity must parse as a whole number of at
// least one.
func NewItem(name, quantityText string) (Item, error) {
	name = strings.TrimSpace(name)
	quantityText = strings.TrimSpace(quantityText)

	quantity, err := strconv.Atoi(quantityText)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %w: %q is not a number", kerrors.ErrValidation, kerrors.ErrInvalidQuantity, quantityText)
	}

	item := Item{Name: name, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// ParseAssignment splits NAME=QTY as typed on the command line and builds
// the item. The split is on the last '=' so names may contain one.
func ParseAssignment(s string) (Item, error) {
	idx := strings.LastIndex(s, "=")
	if idx < 0 {
		return Item{}, fmt.Errorf("%w: expected NAME=QUANTITY, got %q", kerrors.ErrValidation, s)
	}
	return NewItem(s[:idx], s[idx+1:])
}

// ValidateDrawerName reports whether name can be used as a drawer name.
func ValidateDrawerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %w: drawer name is empty", kerrors.ErrValidation, kerrors.ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %w: drawer name %q is not valid UTF-8", kerrors.ErrValidation, kerrors.ErrInvalidName, name)
	}
	return nil
}
