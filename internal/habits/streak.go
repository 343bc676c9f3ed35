package habits

import (
	"sort"
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/models"
)

// Streak summarizes consecutive completion days. Current is the run ending
// on asOf's day or the day before it; a run that ended earlier is broken.
type Streak struct {
	Current int    `json:"current"`
	Longest int    `json:"longest"`
	LastKey string `json:"last_key,omitempty"`
}

// ComputeStreak derives streaks from completion history. Two completions are
// consecutive when their local day keys are exactly one calendar day apart;
// several completions on one day count once. Completions after asOf's day
// are ignored.
func ComputeStreak(completions []models.HabitCompletion, cal calendar.Calendar, asOf time.Time) Streak {
	if cal == nil {
		cal = calendar.New("")
	}
	today := cal.DateKey(asOf)

	seen := make(map[string]bool)
	var keys []string
	for _, c := range completions {
		key := cal.DateKey(c.CompletedAt)
		if key > today || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return Streak{}
	}
	sort.Strings(keys)

	longest, run := 1, 1
	for i := 1; i < len(keys); i++ {
		if nextKey(cal, keys[i-1]) == keys[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := keys[len(keys)-1]
	current := 0
	if last == today || nextKey(cal, last) == today {
		current = run
	}
	return Streak{Current: current, Longest: longest, LastKey: last}
}

func nextKey(cal calendar.Calendar, key string) string {
	day, err := cal.ParseDateKey(key)
	if err != nil {
		return ""
	}
	return cal.DateKey(cal.AddDays(day, 1))
}
