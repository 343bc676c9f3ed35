package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
)

const taskColumns = `id, name, duration_min, priority, energy, stage, project_id, skill_id, goal_id,
	location, due_at, blocked, created_at, completed_at`

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	var stage, createdAt string
	var dueAt, completedAt sql.NullString
	var blocked int

	err := row.Scan(&t.ID, &t.Name, &t.DurationMin, &t.Priority, &t.Energy, &stage, &t.ProjectID,
		&t.SkillID, &t.GoalID, &t.Location, &dueAt, &blocked, &createdAt, &completedAt)
	if err != nil {
		return models.Task{}, err
	}
	t.Stage = models.Stage(stage)
	t.Blocked = blocked != 0

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if t.DueAt, err = parseNullTime(dueAt, "due_at"); err != nil {
		return models.Task{}, err
	}
	if t.CompletedAt, err = parseNullTime(completedAt, "completed_at"); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// AddTask inserts a task, replacing any existing task with the same ID.
func (s *Store) AddTask(ctx context.Context, userID string, t models.Task) error {
	blocked := 0
	if t.Blocked {
		blocked = 1
	}
	_, err := s.exec(ctx, `INSERT INTO tasks (id, user_id, name, duration_min, priority, energy, stage,
		project_id, skill_id, goal_id, location, due_at, blocked, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, duration_min = excluded.duration_min, priority = excluded.priority,
			energy = excluded.energy, stage = excluded.stage, project_id = excluded.project_id,
			skill_id = excluded.skill_id, goal_id = excluded.goal_id, location = excluded.location,
			due_at = excluded.due_at, blocked = excluded.blocked, completed_at = excluded.completed_at`,
		t.ID, userID, t.Name, t.DurationMin, int(t.Priority), int(t.Energy), string(t.Stage),
		t.ProjectID, t.SkillID, t.GoalID, t.Location, nullTime(t.DueAt), blocked,
		formatTime(t.CreatedAt), nullTime(t.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to save task %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, userID, id string) (models.Task, error) {
	row := s.queryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE user_id = ? AND id = ?", userID, id)
	t, err := scanTask(row)
	if err != nil {
		return models.Task{}, notFound(err, "task", id)
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, userID string, includeCompleted bool) ([]models.Task, error) {
	q := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	if !includeCompleted {
		q += " AND completed_at IS NULL"
	}
	return s.listTasks(ctx, q+" ORDER BY created_at, id", userID)
}

// ReadyTasks returns tasks that are neither completed nor blocked.
func (s *Store) ReadyTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return s.listTasks(ctx, "SELECT "+taskColumns+
		" FROM tasks WHERE user_id = ? AND completed_at IS NULL AND blocked = 0 ORDER BY created_at, id", userID)
}

func (s *Store) listTasks(ctx context.Context, q string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) CompleteTask(ctx context.Context, userID, id string, at time.Time) error {
	res, err := s.exec(ctx, "UPDATE tasks SET completed_at = ? WHERE user_id = ? AND id = ?", formatTime(at), userID, id)
	if err != nil {
		return fmt.Errorf("failed to complete task %s: %w", id, err)
	}
	return requireRow(res, "task", id)
}

const projectColumns = `id, name, duration_min, priority, energy, stage, goal_id, skill_id, location,
	due_at, created_at, completed_at`

func scanProject(row scanner) (models.Project, error) {
	var p models.Project
	var stage, createdAt string
	var dueAt, completedAt sql.NullString

	err := row.Scan(&p.ID, &p.Name, &p.DurationMin, &p.Priority, &p.Energy, &stage, &p.GoalID,
		&p.SkillID, &p.Location, &dueAt, &createdAt, &completedAt)
	if err != nil {
		return models.Project{}, err
	}
	p.Stage = models.Stage(stage)

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Project{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if p.DueAt, err = parseNullTime(dueAt, "due_at"); err != nil {
		return models.Project{}, err
	}
	if p.CompletedAt, err = parseNullTime(completedAt, "completed_at"); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) AddProject(ctx context.Context, userID string, p models.Project) error {
	_, err := s.exec(ctx, `INSERT INTO projects (id, user_id, name, duration_min, priority, energy, stage,
		goal_id, skill_id, location, due_at, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, duration_min = excluded.duration_min, priority = excluded.priority,
			energy = excluded.energy, stage = excluded.stage, goal_id = excluded.goal_id,
			skill_id = excluded.skill_id, location = excluded.location, due_at = excluded.due_at,
			completed_at = excluded.completed_at`,
		p.ID, userID, p.Name, p.DurationMin, int(p.Priority), int(p.Energy), string(p.Stage),
		p.GoalID, p.SkillID, p.Location, nullTime(p.DueAt), formatTime(p.CreatedAt), nullTime(p.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, userID, id string) (models.Project, error) {
	row := s.queryRow(ctx, "SELECT "+projectColumns+" FROM projects WHERE user_id = ? AND id = ?", userID, id)
	p, err := scanProject(row)
	if err != nil {
		return models.Project{}, notFound(err, "project", id)
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context, userID string, includeCompleted bool) ([]models.Project, error) {
	q := "SELECT " + projectColumns + " FROM projects WHERE user_id = ?"
	if !includeCompleted {
		q += " AND completed_at IS NULL"
	}
	rows, err := s.query(ctx, q+" ORDER BY created_at, id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ReadyProjects returns projects that are not completed.
func (s *Store) ReadyProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return s.ListProjects(ctx, userID, false)
}

func (s *Store) AddGoal(ctx context.Context, userID string, g models.Goal) error {
	_, err := s.exec(ctx, `INSERT INTO goals (id, user_id, name, priority, boost, due_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, priority = excluded.priority, boost = excluded.boost,
			due_at = excluded.due_at, updated_at = excluded.updated_at`,
		g.ID, userID, g.Name, int(g.Priority), g.Boost, nullTime(g.DueAt), formatTime(g.CreatedAt), formatTime(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save goal %s: %w", g.ID, err)
	}
	return nil
}

func (s *Store) Goals(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := s.query(ctx, `SELECT id, name, priority, boost, due_at, created_at, updated_at
		FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var dueAt sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&g.ID, &g.Name, &g.Priority, &g.Boost, &dueAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if g.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		if g.DueAt, err = parseNullTime(dueAt, "due_at"); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
