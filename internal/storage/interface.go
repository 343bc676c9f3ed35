package storage

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/windows"
)

// ErrNotFound is returned when a requested record does not exist for the
// user.
var ErrNotFound = errors.New("not found")

// Provider is the persistence surface shared by the sqlite and postgres
// backends. Every record is scoped to a user ID.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(ctx context.Context, userID string) (models.Settings, error)
	SaveSettings(ctx context.Context, userID string, settings models.Settings) error
	TimeZone(ctx context.Context, userID string) (string, error)

	// Tasks, projects and goals
	AddTask(ctx context.Context, userID string, task models.Task) error
	GetTask(ctx context.Context, userID, id string) (models.Task, error)
	ListTasks(ctx context.Context, userID string, includeCompleted bool) ([]models.Task, error)
	CompleteTask(ctx context.Context, userID, id string, at time.Time) error
	ReadyTasks(ctx context.Context, userID string) ([]models.Task, error)

	AddProject(ctx context.Context, userID string, project models.Project) error
	GetProject(ctx context.Context, userID, id string) (models.Project, error)
	ListProjects(ctx context.Context, userID string, includeCompleted bool) ([]models.Project, error)
	ReadyProjects(ctx context.Context, userID string) ([]models.Project, error)

	AddGoal(ctx context.Context, userID string, goal models.Goal) error
	Goals(ctx context.Context, userID string) ([]models.Goal, error)

	// Habits
	AddHabit(ctx context.Context, userID string, habit models.Habit) error
	GetHabit(ctx context.Context, userID, id string) (models.Habit, error)
	GetHabitByName(ctx context.Context, userID, name string) (models.Habit, error)
	ActiveHabits(ctx context.Context, userID string) ([]models.Habit, error)
	ArchiveHabit(ctx context.Context, userID, id string, at time.Time) error
	SetHabitOverride(ctx context.Context, userID, id string, override *time.Time) error
	AddHabitCompletion(ctx context.Context, userID string, completion models.HabitCompletion) error
	HabitCompletions(ctx context.Context, userID, habitID string) ([]models.HabitCompletion, error)

	// Windows and day types
	SaveWindow(ctx context.Context, userID, dayTypeID string, window models.Window) error
	DeleteWindow(ctx context.Context, userID, dayTypeID, id string) error
	SaveDayType(ctx context.Context, userID string, dayType models.DayType) error
	AssignDayType(ctx context.Context, userID, dateKey, dayTypeID string) error
	ReplaceWindowConfig(ctx context.Context, userID string, cfg windows.Config) error
	WindowConfig(ctx context.Context, userID string) (windows.Config, error)

	// Placements
	SavePlacements(ctx context.Context, userID, dateKey string, placements []models.Placement) error
	GetPlacements(ctx context.Context, userID, dateKey string) ([]models.Placement, error)

	// Utils
	GetConfigPath() string
}
