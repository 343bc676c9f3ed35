package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/storage/sqlite"
)

// Monday 2 March 2026, 08:00 UTC.
var testNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

type confirmStub struct {
	answer bool
	calls  int
}

func (c *confirmStub) confirm(string) (bool, error) {
	c.calls++
	return c.answer, nil
}

func setupContext(t *testing.T) (*Context, *bytes.Buffer, *confirmStub) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "dayweave.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	stub := &confirmStub{}
	ctx := &Context{
		Store:   store,
		UserID:  constants.DefaultUserID,
		Out:     out,
		Now:     func() time.Time { return testNow },
		Confirm: stub.confirm,
	}
	return ctx, out, stub
}

type runner interface {
	Run(ctx *Context) error
}

func mustRun(t *testing.T, ctx *Context, cmd runner) {
	t.Helper()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("%T.Run() error = %v", cmd, err)
	}
}

func TestPlaceSavesDay(t *testing.T) {
	ctx, out, stub := setupContext(t)

	mustRun(t, ctx, &WindowAddCmd{ID: "morning", Start: "09:00", End: "11:00", Energy: "extreme"})
	mustRun(t, ctx, &TaskAddCmd{Name: "Write report", Duration: 60, Priority: "high", Energy: "medium"})
	mustRun(t, ctx, &HabitAddCmd{Name: "Stretch", Recurrence: "daily", Duration: 15})
	out.Reset()

	mustRun(t, ctx, &PlaceCmd{Date: "today", Save: true, Yes: true})
	got := out.String()
	for _, want := range []string{"Plan for 2026-03-02", "Write report", "Stretch", "Saved 2 placements for 2026-03-02"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if stub.calls != 0 {
		t.Errorf("confirm called %d times with --yes", stub.calls)
	}

	placements, err := ctx.Store.GetPlacements(ctx.ctx(), ctx.UserID, "2026-03-02")
	if err != nil {
		t.Fatalf("GetPlacements() error = %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("saved %d placements, want 2", len(placements))
	}
	if want := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC); !placements[0].Start.Equal(want) {
		t.Errorf("first placement starts %v, want %v", placements[0].Start, want)
	}
}

func TestPlaceReplanAsksBeforeReplacing(t *testing.T) {
	ctx, out, stub := setupContext(t)

	mustRun(t, ctx, &WindowAddCmd{ID: "morning", Start: "09:00", End: "11:00", Energy: "extreme"})
	mustRun(t, ctx, &HabitAddCmd{Name: "Stretch", Recurrence: "daily", Duration: 15})
	mustRun(t, ctx, &PlaceCmd{Date: "today", Save: true, Yes: true})
	out.Reset()

	mustRun(t, ctx, &PlaceCmd{Date: "today", Save: true})
	if stub.calls != 1 {
		t.Fatalf("confirm called %d times, want 1", stub.calls)
	}
	got := out.String()
	if !strings.Contains(got, "Plan not saved.") {
		t.Errorf("expected declined save message, got:\n%s", got)
	}
	if !strings.Contains(got, "Stretch") {
		t.Errorf("habit scheduled by the saved plan should stay in the replan:\n%s", got)
	}
}

func TestPlaceExplainsUnplaced(t *testing.T) {
	tests := []struct {
		name   string
		window *WindowAddCmd
		task   *TaskAddCmd
		want   string
	}{
		{
			name: "no windows",
			task: &TaskAddCmd{Name: "Inbox", Duration: 30},
			want: "no window that could host it had room",
		},
		{
			name:   "energy above cap",
			window: &WindowAddCmd{ID: "evening", Start: "19:00", End: "21:00", Energy: "low"},
			task:   &TaskAddCmd{Name: "Deadlift", Duration: 30, Energy: "ultra"},
			want:   "no window allows this much energy",
		},
		{
			name:   "too long",
			window: &WindowAddCmd{ID: "short", Start: "09:00", End: "09:30", Energy: "extreme"},
			task:   &TaskAddCmd{Name: "Deep work", Duration: 90},
			want:   "longer than any single window",
		},
		{
			name:   "window inactive on the day",
			window: &WindowAddCmd{ID: "weekend", Start: "09:00", End: "12:00", Days: "sat,sun", Energy: "extreme"},
			task:   &TaskAddCmd{Name: "Garden", Duration: 30},
			want:   "no window is active on this day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out, _ := setupContext(t)
			if tt.window != nil {
				mustRun(t, ctx, tt.window)
			}
			mustRun(t, ctx, tt.task)
			out.Reset()

			mustRun(t, ctx, &PlaceCmd{Date: "2026-03-02"})
			got := out.String()
			if !strings.Contains(got, "Not placed") || !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestWindowAddRejectsOverlap(t *testing.T) {
	ctx, _, _ := setupContext(t)
	mustRun(t, ctx, &WindowAddCmd{ID: "morning", Start: "09:00", End: "11:00", Energy: "extreme"})

	err := (&WindowAddCmd{ID: "brunch", Start: "10:30", End: "12:00", Energy: "extreme"}).Run(ctx)
	if err == nil {
		t.Fatal("expected overlapping window to be rejected")
	}

	// Replacing a window by ID is not an overlap with itself.
	mustRun(t, ctx, &WindowAddCmd{ID: "morning", Start: "08:00", End: "10:00", Energy: "high"})
}

func TestHabitDoneAndList(t *testing.T) {
	ctx, out, _ := setupContext(t)
	mustRun(t, ctx, &HabitAddCmd{Name: "Read", Recurrence: "daily", Duration: 20})
	mustRun(t, ctx, &HabitDoneCmd{Name: "Read"})
	out.Reset()

	mustRun(t, ctx, &HabitListCmd{})
	got := out.String()
	if !strings.Contains(got, "streak 1") {
		t.Errorf("expected streak 1 after a completion today:\n%s", got)
	}
	if !strings.Contains(got, "not due") {
		t.Errorf("habit completed today should not be due:\n%s", got)
	}

	if err := (&HabitAddCmd{Name: "Read", Recurrence: "daily", Duration: 20}).Run(ctx); err == nil {
		t.Error("expected duplicate habit name to be rejected")
	}
}

func TestDoctor(t *testing.T) {
	ctx, out, _ := setupContext(t)
	mustRun(t, ctx, &WindowAddCmd{ID: "morning", Start: "09:00", End: "11:00", Energy: "extreme"})
	out.Reset()

	mustRun(t, ctx, &DoctorCmd{})
	got := out.String()
	for _, want := range []string{"✓ Database reachable: OK", "✓ Schema version: OK", "⚠ Backups present: WARNING", "All diagnostics passed!"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestParseDay(t *testing.T) {
	cal := calendar.New("UTC")
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "today", input: "today", want: "2026-03-02"},
		{name: "empty means today", input: "", want: "2026-03-02"},
		{name: "tomorrow", input: "Tomorrow", want: "2026-03-03"},
		{name: "date key", input: "2026-04-01", want: "2026-04-01"},
		{name: "invalid", input: "next week", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := parseDay(tt.input, cal, testNow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cal.DateKey(day) != tt.want {
				t.Errorf("parseDay() = %s, want %s", cal.DateKey(day), tt.want)
			}
		})
	}
}

func TestMaskPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "url", input: "postgres://me:secret@db:5432/app", want: "postgres://me:xxxxx@db:5432/app"},
		{name: "url without password", input: "postgres://me@db/app", want: "postgres://me@db/app"},
		{name: "key value", input: "host=db user=me password=secret", want: "host=db user=me password=****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskPassword(tt.input); got != tt.want {
				t.Errorf("maskPassword() = %q, want %q", got, tt.want)
			}
		})
	}
}
