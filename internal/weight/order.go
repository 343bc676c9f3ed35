package weight

import (
	"sort"

	"github.com/julianstephens/dayweave/internal/models"
)

// Scored pairs an item with the weight it was ranked by.
type Scored struct {
	Item   models.WorkItem
	Weight float64
}

// Less orders a before b: heavier first, then earlier due time (items with a
// due time before those without), then earlier creation, then name, then ID.
// It is a total order for items with distinct IDs.
func Less(a, b Scored) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	ad, bd := a.Item.DueAt, b.Item.DueAt
	switch {
	case ad != nil && bd == nil:
		return true
	case ad == nil && bd != nil:
		return false
	case ad != nil && bd != nil && !ad.Equal(*bd):
		return ad.Before(*bd)
	}
	if !a.Item.CreatedAt.Equal(b.Item.CreatedAt) {
		return a.Item.CreatedAt.Before(b.Item.CreatedAt)
	}
	if a.Item.Name != b.Item.Name {
		return a.Item.Name < b.Item.Name
	}
	return a.Item.ID < b.Item.ID
}

// Rank scores every item and returns them in placement order. The input
// slice is not modified.
func (m Model) Rank(items []models.WorkItem) []Scored {
	scored := make([]Scored, len(items))
	for i, item := range items {
		scored[i] = Scored{Item: item, Weight: m.Item(item)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return Less(scored[i], scored[j])
	})
	return scored
}
