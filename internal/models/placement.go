package models

import "time"

// Placement assigns a work item to a span of a window on the run's date.
type Placement struct {
	ItemID   string    `json:"item_id"`
	WindowID string    `json:"window_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Weight   float64   `json:"weight"`
}

// UnplacedReason is the closed set of explanations for an item that no
// window could host.
type UnplacedReason string

const (
	ReasonNoCapacity               UnplacedReason = "NoCapacity"
	ReasonEnergyExceeded           UnplacedReason = "EnergyExceeded"
	ReasonNoActiveWindow           UnplacedReason = "NoActiveWindow"
	ReasonDurationExceedsAnyWindow UnplacedReason = "DurationExceedsAnyWindow"
)

// Explain renders the reason for a "why wasn't this scheduled" message.
func (r UnplacedReason) Explain() string {
	switch r {
	case ReasonNoCapacity:
		return "no window that could host it had room"
	case ReasonEnergyExceeded:
		return "there was room, but no window allows this much energy"
	case ReasonNoActiveWindow:
		return "no window is active on this day"
	case ReasonDurationExceedsAnyWindow:
		return "it is longer than any single window on this day"
	default:
		return string(r)
	}
}

// UnplacedResult explains why an item has no placement.
type UnplacedResult struct {
	ItemID string         `json:"item_id"`
	Reason UnplacedReason `json:"reason"`
}
