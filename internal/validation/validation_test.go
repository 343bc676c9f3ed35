package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/windows"
)

func w(id, start, end string, days ...time.Weekday) models.Window {
	return models.Window{ID: id, Start: models.MustClock(start), End: models.MustClock(end), Days: days, EnergyCap: models.EnergyHigh}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name    string
		window  models.Window
		wantErr bool
	}{
		{name: "valid", window: w("a", "09:00", "10:00")},
		{name: "to midnight", window: w("a", "22:00", "24:00")},
		{name: "missing id", window: w("", "09:00", "10:00"), wantErr: true},
		{name: "end before start", window: w("a", "10:00", "09:00"), wantErr: true},
		{name: "empty span", window: w("a", "10:00", "10:00"), wantErr: true},
		{name: "bad energy", window: models.Window{ID: "a", Start: 60, End: 120, EnergyCap: 9}, wantErr: true},
		{name: "bad weekday", window: models.Window{ID: "a", Start: 60, End: 120, Days: []time.Weekday{7}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Window(tt.window)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Window() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("error should wrap ErrInvalid: %v", err)
			}
		})
	}
}

func TestWindows(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.Window
		wantErr bool
	}{
		{name: "disjoint", windows: []models.Window{w("a", "09:00", "10:00"), w("b", "10:00", "11:00")}},
		{name: "overlap", windows: []models.Window{w("a", "09:00", "10:30"), w("b", "10:00", "11:00")}, wantErr: true},
		{
			name:    "overlap on different days",
			windows: []models.Window{w("a", "09:00", "10:30", time.Monday), w("b", "10:00", "11:00", time.Tuesday)},
		},
		{
			name:    "overlap with an every-day window",
			windows: []models.Window{w("a", "09:00", "10:30", time.Monday), w("b", "10:00", "11:00")},
			wantErr: true,
		},
		{name: "duplicate id", windows: []models.Window{w("a", "09:00", "10:00"), w("a", "11:00", "12:00")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Windows(tt.windows); (err != nil) != tt.wantErr {
				t.Errorf("Windows() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig(t *testing.T) {
	valid := windows.Config{
		Windows:     []models.Window{w("a", "09:00", "10:00")},
		DayTypes:    []models.DayType{{ID: "rest", Name: "Rest", Windows: []models.Window{w("walk", "10:00", "11:00")}}},
		Assignments: map[string]string{"2024-06-08": "rest"},
	}
	if err := Config(valid); err != nil {
		t.Fatalf("Config(valid) = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*windows.Config)
	}{
		{name: "unknown assignment", mutate: func(c *windows.Config) { c.Assignments = map[string]string{"2024-06-08": "nope"} }},
		{name: "bad date key", mutate: func(c *windows.Config) { c.Assignments = map[string]string{"June 8": "rest"} }},
		{name: "unknown default", mutate: func(c *windows.Config) { c.DefaultDayType = "nope" }},
		{name: "unnamed day type", mutate: func(c *windows.Config) { c.DayTypes = []models.DayType{{ID: "rest"}} }},
		{
			name: "two defaults",
			mutate: func(c *windows.Config) {
				c.DayTypes = []models.DayType{{ID: "x", Name: "X", IsDefault: true}, {ID: "rest", Name: "R", IsDefault: true}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Assignments = map[string]string{"2024-06-08": "rest"}
			tt.mutate(&cfg)
			err := Config(cfg)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error should wrap ErrInvalid: %v", err)
			}
		})
	}
}

func TestSettingsAndTimeZone(t *testing.T) {
	if err := Settings(models.Settings{Timezone: "UTC", GoalAgePerDay: 1}); err != nil {
		t.Errorf("valid settings rejected: %v", err)
	}
	if err := Settings(models.Settings{Timezone: "Mars/Olympus"}); err == nil {
		t.Error("unknown zone accepted")
	}
	if err := Settings(models.Settings{GoalAgeCapDays: -1}); err == nil {
		t.Error("negative cap accepted")
	}
	if err := TimeZone("Nowhere/City"); !errors.Is(err, ErrInvalid) {
		t.Errorf("TimeZone() = %v, want ErrInvalid", err)
	}
}

func TestHabit(t *testing.T) {
	tests := []struct {
		name    string
		habit   models.Habit
		wantErr bool
	}{
		{name: "daily", habit: models.Habit{ID: "h", Name: "H", Recurrence: models.Recurrence{Kind: models.RecurrenceDaily}}},
		{name: "no kind", habit: models.Habit{ID: "h", Name: "H"}, wantErr: true},
		{name: "unknown kind", habit: models.Habit{ID: "h", Name: "H", Recurrence: models.Recurrence{Kind: "fortnightly"}}, wantErr: true},
		{name: "interval without days", habit: models.Habit{ID: "h", Name: "H", Recurrence: models.Recurrence{Kind: models.RecurrenceIntervalDays}}, wantErr: true},
		{name: "window without window", habit: models.Habit{ID: "h", Name: "H", Recurrence: models.Recurrence{Kind: models.RecurrenceWindow}}, wantErr: true},
		{name: "negative duration", habit: models.Habit{ID: "h", Name: "H", DurationMin: -5, Recurrence: models.Recurrence{Kind: models.RecurrenceDaily}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Habit(tt.habit); (err != nil) != tt.wantErr {
				t.Errorf("Habit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkItems(t *testing.T) {
	ok := []models.WorkItem{
		{ID: "a", Kind: models.KindTask, DurationMin: 10},
		{ID: "b", Kind: models.KindHabit, DurationMin: 0},
	}
	if err := WorkItems(ok); err != nil {
		t.Errorf("WorkItems(ok) = %v", err)
	}

	dup := append(ok, models.WorkItem{ID: "a", Kind: models.KindTask})
	if err := WorkItems(dup); err == nil {
		t.Error("duplicate IDs accepted")
	}

	neg := []models.WorkItem{{ID: "n", Kind: models.KindTask, DurationMin: -1}}
	if err := WorkItems(neg); err == nil {
		t.Error("negative duration accepted")
	}
}
