// Package scheduler runs a full placement for one user and day: it loads the
// user's configuration and work, resolves windows, decides which habits are
// due and hands the candidates to the placement engine.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/habits"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/placement"
	"github.com/julianstephens/dayweave/internal/weight"
	"github.com/julianstephens/dayweave/internal/windows"
)

// ItemRepository supplies the work a run may place.
type ItemRepository interface {
	// ReadyTasks returns tasks that are neither completed nor blocked.
	ReadyTasks(ctx context.Context, userID string) ([]models.Task, error)
	// ReadyProjects returns projects that are not completed.
	ReadyProjects(ctx context.Context, userID string) ([]models.Project, error)
	Goals(ctx context.Context, userID string) ([]models.Goal, error)
	// ActiveHabits returns habits that are neither archived nor deleted.
	ActiveHabits(ctx context.Context, userID string) ([]models.Habit, error)
	HabitCompletions(ctx context.Context, userID, habitID string) ([]models.HabitCompletion, error)
}

// WindowRepository supplies the raw window configuration.
type WindowRepository interface {
	WindowConfig(ctx context.Context, userID string) (windows.Config, error)
}

// TimeZoneSource supplies the user's IANA zone name.
type TimeZoneSource interface {
	TimeZone(ctx context.Context, userID string) (string, error)
}

// Request selects the user and day to plan. Date is a YYYY-MM-DD key in the
// user's zone; empty means today.
type Request struct {
	UserID string
	Date   string
	// Replan treats habits scheduled on Date by a saved plan as unscheduled,
	// so a plan that replaces it places them again.
	Replan bool
}

// HabitDue records the due decision for one habit.
type HabitDue struct {
	HabitID string         `json:"habit_id"`
	Name    string         `json:"name"`
	Due     habits.DueInfo `json:"due"`
	Streak  habits.Streak  `json:"streak"`
}

// Plan is the outcome of a run. Items lists every candidate in the order
// they were submitted to the engine.
type Plan struct {
	UserID     string                  `json:"user_id"`
	DateKey    string                  `json:"date_key"`
	Date       time.Time               `json:"date"`
	Zone       string                  `json:"zone"`
	Windows    []models.Window         `json:"windows"`
	Items      []models.WorkItem       `json:"items"`
	Placements []models.Placement      `json:"placements"`
	Unplaced   []models.UnplacedResult `json:"unplaced"`
	Habits     []HabitDue              `json:"habits"`
}

// Item looks up a candidate by ID.
func (p Plan) Item(id string) (models.WorkItem, bool) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, true
		}
	}
	return models.WorkItem{}, false
}

// Scheduler wires the collaborators to the engine. Policy and FallbackZone
// are read on every run and may be set after New.
type Scheduler struct {
	Items        ItemRepository
	Windows      WindowRepository
	Zones        TimeZoneSource
	Policy       weight.Policy
	FallbackZone string
	Now          func() time.Time
}

func New(items ItemRepository, windowRepo WindowRepository, zones TimeZoneSource) *Scheduler {
	return &Scheduler{
		Items:   items,
		Windows: windowRepo,
		Zones:   zones,
		Now:     time.Now,
	}
}

// Run plans req.Date for req.UserID. Errors come only from the
// collaborators or a malformed date; an empty day is a valid plan.
func (s *Scheduler) Run(ctx context.Context, req Request) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	zone, err := s.Zones.TimeZone(ctx, req.UserID)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to load time zone: %w", err)
	}
	loc := calendar.NormalizeTimeZoneWithFallback(zone, s.FallbackZone)
	if fellBack(zone, loc) {
		logger.Warn("Unknown time zone, using fallback", "zone", zone, "fallback", loc.String())
	}
	cal := calendar.ForLocation(loc)

	day, err := s.day(req.Date, cal)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{UserID: req.UserID, DateKey: cal.DateKey(day), Date: day, Zone: loc.String()}
	log := logger.With("user", req.UserID, "date", plan.DateKey)

	cfg, err := s.Windows.WindowConfig(ctx, req.UserID)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to load windows: %w", err)
	}
	plan.Windows = windows.ResolveForDate(day, cfg, cal)
	log.Debug("Resolved windows", "count", len(plan.Windows))

	tasks, err := s.Items.ReadyTasks(ctx, req.UserID)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	projects, err := s.Items.ReadyProjects(ctx, req.UserID)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to load projects: %w", err)
	}
	goals, err := s.Items.Goals(ctx, req.UserID)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to load goals: %w", err)
	}

	model := weight.New(s.Policy, day)
	plan.Items = append(plan.Items, s.workItems(model, tasks, projects, goals)...)

	habitItems, dues, err := s.dueHabits(ctx, req, day, cfg, cal)
	if err != nil {
		return Plan{}, err
	}
	plan.Items = append(plan.Items, habitItems...)
	plan.Habits = dues

	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	candidates := plan.Windows
	if len(candidates) == 0 {
		// Inactive windows still reach the engine so it can tell them apart
		// from having no windows at all.
		candidates = cfg.SourceFor(day, cal)
	}
	res := placement.New(cal, s.Policy).Place(plan.Items, candidates, day)
	if err := res.Check(plan.Items); err != nil {
		log.Error("Placement result is incomplete", "error", err)
		return Plan{}, fmt.Errorf("incomplete placement for %s: %w", plan.DateKey, err)
	}
	plan.Placements = res.Placements
	plan.Unplaced = res.Unplaced

	log.Info("Plan generated",
		"zone", plan.Zone,
		"windows", len(plan.Windows),
		"placed", len(plan.Placements),
		"unplaced", len(plan.Unplaced),
	)
	return plan, nil
}

func (s *Scheduler) day(key string, cal calendar.Calendar) (time.Time, error) {
	if key == "" {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		return cal.StartOfDay(now()), nil
	}
	day, err := cal.ParseDateKey(key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	return day, nil
}

// workItems folds ready tasks into their ready projects and returns the
// standalone tasks followed by the project items.
func (s *Scheduler) workItems(model weight.Model, tasks []models.Task, projects []models.Project, goals []models.Goal) []models.WorkItem {
	open := make(map[string]bool, len(projects))
	for _, p := range projects {
		open[p.ID] = true
	}

	var standalone []models.WorkItem
	var folded []models.Task
	for _, t := range tasks {
		if !t.Ready() {
			continue
		}
		if t.ProjectID != "" && open[t.ProjectID] {
			folded = append(folded, t)
			continue
		}
		standalone = append(standalone, weight.TaskItem(t))
	}

	goalWeights := model.GoalWeights(goals, projects)
	for _, p := range model.BuildProjectItems(projects, folded, goalWeights) {
		standalone = append(standalone, p.WorkItem)
	}
	return standalone
}

func (s *Scheduler) dueHabits(ctx context.Context, req Request, day time.Time, cfg windows.Config, cal calendar.Calendar) ([]models.WorkItem, []HabitDue, error) {
	userID := req.UserID
	all, err := s.Items.ActiveHabits(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load habits: %w", err)
	}

	var items []models.WorkItem
	dues := make([]HabitDue, 0, len(all))
	for _, h := range all {
		if req.Replan && h.LastScheduledStart != nil && cal.StartOfDay(*h.LastScheduledStart).Equal(day) {
			h.LastScheduledStart = nil
		}
		var windowDays []time.Weekday
		if h.WindowID != "" {
			days, ok := cfg.DaysFor(h.WindowID)
			if !ok {
				logger.Warn("Habit bound to unknown window", "habit", h.ID, "window", h.WindowID)
			}
			windowDays = days
		}

		info := habits.EvaluateDueOnDate(habits.Params{
			Habit:      h,
			Date:       day,
			Calendar:   cal,
			WindowDays: windowDays,
		})
		due := HabitDue{HabitID: h.ID, Name: h.Name, Due: info}
		logger.Debug("Habit evaluated", "habit", h.ID, "due", info.IsDue, "tag", info.Tag)

		if info.IsDue {
			completions, err := s.Items.HabitCompletions(ctx, userID, h.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to load completions for habit %s: %w", h.ID, err)
			}
			due.Streak = habits.ComputeStreak(completions, cal, day)

			recurrence := h.Recurrence
			items = append(items, models.WorkItem{
				ID:          h.ID,
				Name:        h.Name,
				Kind:        models.KindHabit,
				DurationMin: h.DurationMin,
				Priority:    h.Priority,
				Energy:      h.Energy,
				SkillID:     h.SkillID,
				Location:    h.Location,
				DueAt:       info.DueStart,
				CreatedAt:   h.CreatedAt,
				Recurrence:  &recurrence,
				Streak:      due.Streak.Current,
			})
		}
		dues = append(dues, due)
	}
	return items, dues, nil
}

// fellBack reports whether a non-empty stored zone was replaced by the
// fallback when it was loaded.
func fellBack(zone string, loc *time.Location) bool {
	zone = strings.TrimSpace(zone)
	return zone != "" && loc.String() != zone
}
