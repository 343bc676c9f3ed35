package placement

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayweave/internal/models"
)

// Check verifies that every item in items appears exactly once across the
// result's placements and unplaced records, and nothing else does.
func (r Result) Check(items []models.WorkItem) error {
	want := make(map[string]int, len(items))
	for _, it := range items {
		want[it.ID]++
	}
	seen := make(map[string]int, len(items))
	for _, p := range r.Placements {
		seen[p.ItemID]++
	}
	for _, u := range r.Unplaced {
		seen[u.ItemID]++
	}

	var errs []error
	if got := len(r.Placements) + len(r.Unplaced); got != len(items) {
		errs = append(errs, fmt.Errorf("%d records for %d items", got, len(items)))
	}
	for id, n := range want {
		if n > 1 {
			errs = append(errs, fmt.Errorf("item %s given %d times", id, n))
		}
		if seen[id] != 1 {
			errs = append(errs, fmt.Errorf("item %s has %d records", id, seen[id]))
		}
	}
	for id := range seen {
		if _, ok := want[id]; !ok {
			errs = append(errs, fmt.Errorf("record for unknown item %s", id))
		}
	}
	return errors.Join(errs...)
}

// Placed returns the placement for itemID, if any.
func (r Result) Placed(itemID string) (models.Placement, bool) {
	for _, p := range r.Placements {
		if p.ItemID == itemID {
			return p, true
		}
	}
	return models.Placement{}, false
}

// Reason returns why itemID was not placed, if it wasn't.
func (r Result) Reason(itemID string) (models.UnplacedReason, bool) {
	for _, u := range r.Unplaced {
		if u.ItemID == itemID {
			return u.Reason, true
		}
	}
	return "", false
}
