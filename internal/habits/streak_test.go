package habits

import (
	"testing"
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/models"
)

func completionsOn(keys ...string) []models.HabitCompletion {
	out := make([]models.HabitCompletion, len(keys))
	for i, k := range keys {
		out[i] = models.HabitCompletion{ID: k, CompletedAt: day(k).Add(12 * time.Hour)}
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions []models.HabitCompletion
		asOf        string
		want        Streak
	}{
		{name: "no history", asOf: "2024-06-10", want: Streak{}},
		{
			name:        "run ending today",
			completions: completionsOn("2024-06-08", "2024-06-09", "2024-06-10"),
			asOf:        "2024-06-10",
			want:        Streak{Current: 3, Longest: 3, LastKey: "2024-06-10"},
		},
		{
			name:        "run ending yesterday is still current",
			completions: completionsOn("2024-06-08", "2024-06-09"),
			asOf:        "2024-06-10",
			want:        Streak{Current: 2, Longest: 2, LastKey: "2024-06-09"},
		},
		{
			name:        "broken run",
			completions: completionsOn("2024-06-01", "2024-06-02", "2024-06-03", "2024-06-07"),
			asOf:        "2024-06-10",
			want:        Streak{Current: 0, Longest: 3, LastKey: "2024-06-07"},
		},
		{
			name:        "duplicates and unsorted input",
			completions: completionsOn("2024-06-10", "2024-06-09", "2024-06-10", "2024-06-05"),
			asOf:        "2024-06-10",
			want:        Streak{Current: 2, Longest: 2, LastKey: "2024-06-10"},
		},
		{
			name:        "month boundary is adjacent",
			completions: completionsOn("2024-02-28", "2024-02-29", "2024-03-01"),
			asOf:        "2024-03-01",
			want:        Streak{Current: 3, Longest: 3, LastKey: "2024-03-01"},
		},
		{
			name:        "future completions ignored",
			completions: completionsOn("2024-06-09", "2024-06-12"),
			asOf:        "2024-06-10",
			want:        Streak{Current: 1, Longest: 1, LastKey: "2024-06-09"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(tt.completions, utc, day(tt.asOf))
			if got != tt.want {
				t.Errorf("ComputeStreak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStreak_AcrossDST(t *testing.T) {
	cal := calendar.New("America/New_York")
	if cal.Location().String() != "America/New_York" {
		t.Skip("zone data unavailable")
	}
	loc := cal.Location()

	// Spring forward on 2024-03-10; the 23h day must not break the run.
	completions := []models.HabitCompletion{
		{CompletedAt: time.Date(2024, 3, 9, 23, 30, 0, 0, loc)},
		{CompletedAt: time.Date(2024, 3, 10, 23, 30, 0, 0, loc)},
		{CompletedAt: time.Date(2024, 3, 11, 0, 15, 0, 0, loc)},
	}
	got := ComputeStreak(completions, cal, time.Date(2024, 3, 11, 12, 0, 0, 0, loc))
	if got.Current != 3 || got.Longest != 3 {
		t.Errorf("streak across DST = %+v, want 3/3", got)
	}
}
