// Package weight scores work items into a single comparable number.
//
// Priority dominates: one tier step outweighs every secondary term combined,
// so energy, stage and due-date urgency only reorder items within a tier.
package weight

import (
	"math"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
)

var priorityWeight = map[models.Priority]float64{
	models.PriorityNone:          0,
	models.PriorityLow:           10_000,
	models.PriorityMedium:        20_000,
	models.PriorityHigh:          30_000,
	models.PriorityCritical:      50_000,
	models.PriorityUltraCritical: 100_000,
}

// Goal priorities follow the steeper table goals have always used.
var goalPriorityWeight = map[models.Priority]float64{
	models.PriorityNone:          0,
	models.PriorityLow:           10,
	models.PriorityMedium:        200,
	models.PriorityHigh:          300,
	models.PriorityCritical:      500,
	models.PriorityUltraCritical: 1000,
}

const energyStep = 100

var taskStageWeight = map[models.Stage]float64{
	models.StagePrepare: 30,
	models.StageProduce: 20,
	models.StagePerfect: 10,
}

var projectStageWeight = map[models.Stage]float64{
	models.StageResearch: 50,
	models.StageTest:     40,
	models.StageBuild:    30,
	models.StageRefine:   20,
	models.StageRelease:  10,
}

// Urgency ramps linearly from zero at WindowDays before the due time to
// MaxBoost at the due time, and stays at MaxBoost once overdue.
type Urgency struct {
	WindowDays int
	MaxBoost   float64
}

var (
	taskUrgency    = Urgency{WindowDays: 14, MaxBoost: 1000}
	projectUrgency = Urgency{WindowDays: 28, MaxBoost: 800}
	goalUrgency    = Urgency{WindowDays: 42, MaxBoost: 600}
)

const (
	streakStep   = 5
	streakMaxDay = 30
	childDivisor = 1000
)

// Policy holds the tunable parts of the model.
type Policy struct {
	// AgePerDay is added to a goal's weight for every day since its last update.
	AgePerDay float64
	// AgeCapDays caps the age term; zero leaves it uncapped.
	AgeCapDays int
}

// Model scores items as of a fixed instant, normally the start of the day
// being planned. The same Model and inputs always give the same weights.
type Model struct {
	Policy Policy
	AsOf   time.Time
}

// New returns a Model evaluating due dates and ages against asOf.
func New(policy Policy, asOf time.Time) Model {
	return Model{Policy: policy, AsOf: asOf}
}

// Urgency returns the due-date boost for due relative to m.AsOf.
func (m Model) Urgency(due *time.Time, u Urgency) float64 {
	if due == nil || u.WindowDays <= 0 || u.MaxBoost <= 0 {
		return 0
	}
	if !due.After(m.AsOf) {
		return u.MaxBoost
	}
	window := time.Duration(u.WindowDays) * 24 * time.Hour
	remaining := due.Sub(m.AsOf)
	if remaining >= window {
		return 0
	}
	ratio := 1 - float64(remaining)/float64(window)
	return math.Max(0, math.Min(1, ratio)) * u.MaxBoost
}

func energyWeight(e models.Energy) float64 {
	if !e.Valid() {
		return 0
	}
	return float64(e) * energyStep
}

// Task scores a task-shaped item.
func (m Model) Task(item models.WorkItem) float64 {
	return priorityWeight[item.Priority] +
		energyWeight(item.Energy) +
		taskStageWeight[item.Stage] +
		m.Urgency(item.DueAt, taskUrgency)
}

// Project scores a project from its own tiers plus the summed weight of the
// tasks folded into it.
func (m Model) Project(project models.WorkItem, sumOfChildTaskWeights float64) float64 {
	return math.Max(0, sumOfChildTaskWeights)/childDivisor +
		priorityWeight[project.Priority] +
		energyWeight(project.Energy) +
		projectStageWeight[project.Stage] +
		m.Urgency(project.DueAt, projectUrgency)
}

// Goal scores a goal. Goals age: the longer since their last update, the
// heavier they get, plus any manual boost.
func (m Model) Goal(goal models.Goal, sumOfProjectWeights float64) float64 {
	return math.Max(0, sumOfProjectWeights)/childDivisor +
		goalPriorityWeight[goal.Priority] +
		m.Urgency(goal.DueAt, goalUrgency) +
		m.age(goal.UpdatedAt) +
		math.Max(0, goal.Boost)
}

func (m Model) age(updated time.Time) float64 {
	if updated.IsZero() || m.Policy.AgePerDay <= 0 || !updated.Before(m.AsOf) {
		return 0
	}
	days := m.AsOf.Sub(updated).Hours() / 24
	if m.Policy.AgeCapDays > 0 {
		days = math.Min(days, float64(m.Policy.AgeCapDays))
	}
	return math.Floor(days) * m.Policy.AgePerDay
}

// Habit scores a due habit; an unbroken streak nudges it ahead of peers.
func (m Model) Habit(habit models.WorkItem, streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	if streak > streakMaxDay {
		streak = streakMaxDay
	}
	return priorityWeight[habit.Priority] +
		energyWeight(habit.Energy) +
		float64(streak*streakStep)
}

// Item dispatches on the item's kind.
func (m Model) Item(item models.WorkItem) float64 {
	switch item.Kind {
	case models.KindProject:
		return m.Project(item, item.ChildWeight) + math.Max(0, item.GoalWeight)/childDivisor
	case models.KindHabit:
		return m.Habit(item, item.Streak)
	default:
		return m.Task(item)
	}
}
