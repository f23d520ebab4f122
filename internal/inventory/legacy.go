package inventory

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
)

type legacyDocument struct {
	Drawers map[string]legacyDrawer `json:"drawers"`
}

type legacyDrawer struct {
	Drawer string       `json:"drawer"`
	Items  []legacyItem `json:"items"`
}

type legacyItem struct {
	Name     string          `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
}

// ParseLegacy reads the document database written by the previous version of
// the tool. Only the "drawers" table is used. Documents are applied in id
// order, so a drawer name that appears twice keeps its last contents.
func ParseLegacy(data []byte) (*Store, error) {
	var doc legacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrLegacyFormat, err)
	}
	if doc.Drawers == nil {
		return nil, fmt.Errorf("%w: no drawers table", kerrors.ErrLegacyFormat)
	}

	ids := make([]string, 0, len(doc.Drawers))
	for id := range doc.Drawers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})

	drawers := Drawers{}
	for _, id := range ids {
		d := doc.Drawers[id]
		items := make([]Item, 0, len(d.Items))
		for _, li := range d.Items {
			q, err := legacyQuantity(li.Quantity)
			if err != nil {
				return nil, fmt.Errorf("%w: drawer %q item %q: %v", kerrors.ErrLegacyFormat, d.Drawer, li.Name, err)
			}
			items = append(items, Item{Name: li.Name, Quantity: q})
		}
		drawers[d.Drawer] = items
	}

	s := New()
	if err := s.WriteAll(drawers); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrLegacyFormat, err)
	}
	return s, nil
}

// legacyQuantity accepts a JSON integer or a string of digits.
func legacyQuantity(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("quantity %s is not a whole number", string(raw))
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}
	return n, nil
}
