// Package placement assigns ranked work items to a day's windows.
//
// Placement is first-fit: each item, heaviest first, goes to the earliest
// window that is active, allows its energy and still has room for it.
// Items inside a window are packed back to back, so a window's free time is
// a single running total rather than a set of gaps.
package placement

import (
	"sort"
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/weight"
)

// Result holds one record per input item, in placement order.
type Result struct {
	Placements []models.Placement      `json:"placements"`
	Unplaced   []models.UnplacedResult `json:"unplaced"`
}

// Engine places items for one user's calendar. It holds no per-run state
// and is safe for concurrent use.
type Engine struct {
	Calendar calendar.Calendar
	Policy   weight.Policy
}

// New returns an Engine. A nil calendar means UTC.
func New(cal calendar.Calendar, policy weight.Policy) *Engine {
	if cal == nil {
		cal = calendar.New("")
	}
	return &Engine{Calendar: cal, Policy: policy}
}

type slot struct {
	window    models.Window
	capacity  time.Duration
	remaining time.Duration
	cursor    time.Time
}

// Place ranks items and assigns each to the first window that fits it on
// date. It never fails: an item with nowhere to go is reported in Unplaced
// with the reason that blocked it.
func (e *Engine) Place(items []models.WorkItem, windows []models.Window, date time.Time) Result {
	cal := e.Calendar
	if cal == nil {
		cal = calendar.New("")
	}
	day := cal.StartOfDay(date)
	ranked := weight.New(e.Policy, day).Rank(items)
	slots := e.resolve(windows, day, cal)

	res := Result{
		Placements: make([]models.Placement, 0, len(items)),
		Unplaced:   make([]models.UnplacedResult, 0),
	}
	for _, s := range ranked {
		item := s.Item
		dur := time.Duration(item.DurationMin) * time.Minute

		if target := firstFit(slots, item, dur); target != nil {
			start := target.cursor
			end := start.Add(dur)
			target.cursor = end
			target.remaining -= dur
			res.Placements = append(res.Placements, models.Placement{
				ItemID:   item.ID,
				WindowID: target.window.ID,
				Start:    start,
				End:      end,
				Weight:   s.Weight,
			})
			continue
		}

		res.Unplaced = append(res.Unplaced, models.UnplacedResult{
			ItemID: item.ID,
			Reason: reasonFor(len(windows) == 0, slots, item, dur),
		})
	}
	return res
}

// resolve turns the windows active on day into slots ordered by start time.
func (e *Engine) resolve(windows []models.Window, day time.Time, cal calendar.Calendar) []*slot {
	wd := cal.Weekday(day)
	slots := make([]*slot, 0, len(windows))
	for _, w := range windows {
		if !w.ActiveOn(wd) {
			continue
		}
		start := cal.At(day, w.Start)
		end := cal.At(day, w.End)
		capacity := end.Sub(start)
		if capacity < 0 {
			capacity = 0
		}
		slots = append(slots, &slot{window: w, capacity: capacity, remaining: capacity, cursor: start})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].cursor.Equal(slots[j].cursor) {
			return slots[i].cursor.Before(slots[j].cursor)
		}
		return slots[i].window.ID < slots[j].window.ID
	})
	return slots
}

func firstFit(slots []*slot, item models.WorkItem, dur time.Duration) *slot {
	for _, s := range slots {
		if !s.window.AcceptsLocation(item.Location) {
			continue
		}
		if s.window.EnergyCap >= item.Energy && s.remaining >= dur {
			return s
		}
	}
	return nil
}

// reasonFor explains why firstFit found nothing. Checks run from the most
// structural cause to the most transient one.
func reasonFor(noWindows bool, slots []*slot, item models.WorkItem, dur time.Duration) models.UnplacedReason {
	if noWindows {
		return models.ReasonNoCapacity
	}

	var longest time.Duration
	hosts, roomButTooTiring := 0, false
	for _, s := range slots {
		if !s.window.AcceptsLocation(item.Location) {
			continue
		}
		hosts++
		if s.capacity > longest {
			longest = s.capacity
		}
		if s.remaining >= dur && s.window.EnergyCap < item.Energy {
			roomButTooTiring = true
		}
	}

	switch {
	case len(slots) == 0:
		return models.ReasonNoActiveWindow
	case hosts == 0:
		// Windows are active, just none at the item's location.
		return models.ReasonNoCapacity
	case dur > longest:
		return models.ReasonDurationExceedsAnyWindow
	case roomButTooTiring:
		return models.ReasonEnergyExceeded
	default:
		return models.ReasonNoCapacity
	}
}
