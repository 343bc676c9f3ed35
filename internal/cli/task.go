package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/validation"
)

type TaskCmd struct {
	Add  TaskAddCmd  `cmd:"" help:"Add a new task."`
	List TaskListCmd `cmd:"" help:"List tasks."`
	Done TaskDoneCmd `cmd:"" help:"Mark a task completed."`
}

type TaskAddCmd struct {
	Name     string `arg:"" help:"Task name."`
	Duration int    `short:"d" help:"Duration in minutes." required:""`
	Priority string `short:"p" help:"Priority (none, low, medium, high, critical, ultra-critical)." default:"none"`
	Energy   string `short:"e" help:"Energy (none, low, medium, high, ultra, extreme)." default:"none"`
	Stage    string `short:"s" help:"Stage (prepare, produce, perfect)."`
	Project  string `help:"Project ID the task belongs to."`
	Goal     string `help:"Goal ID the task serves."`
	Skill    string `help:"Skill ID the task practices."`
	Location string `help:"Where the task must happen."`
	Due      string `help:"Due date (YYYY-MM-DD or RFC3339)."`
	Blocked  bool   `help:"Add the task as blocked."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	cal, _, err := ctx.calendar()
	if err != nil {
		return err
	}
	priority, energy, err := parseTiers(c.Priority, c.Energy)
	if err != nil {
		return err
	}
	stage, err := models.ParseStage(c.Stage)
	if err != nil {
		return err
	}
	due, err := parseDue(c.Due, cal, ctx.now())
	if err != nil {
		return err
	}
	if c.Project != "" {
		if _, err := ctx.Store.GetProject(ctx.ctx(), ctx.UserID, c.Project); err != nil {
			return err
		}
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Name:        c.Name,
		DurationMin: c.Duration,
		Priority:    priority,
		Energy:      energy,
		Stage:       stage,
		ProjectID:   c.Project,
		GoalID:      c.Goal,
		SkillID:     c.Skill,
		Location:    c.Location,
		DueAt:       due,
		Blocked:     c.Blocked,
		CreatedAt:   ctx.now(),
	}
	if err := validation.Task(task); err != nil {
		return err
	}
	if err := ctx.Store.AddTask(ctx.ctx(), ctx.UserID, task); err != nil {
		return err
	}
	ctx.printf("Added task: %s (%s)\n", task.Name, task.ID)
	return nil
}

type TaskListCmd struct {
	All bool `short:"a" help:"Include completed tasks."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	tasks, err := ctx.Store.ListTasks(ctx.ctx(), ctx.UserID, c.All)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		ctx.printf("No tasks found\n")
		return nil
	}

	ctx.printf("Tasks:\n")
	for _, t := range tasks {
		status := "open"
		switch {
		case t.CompletedAt != nil:
			status = "done"
		case t.Blocked:
			status = "blocked"
		}
		ctx.printf("  [%s] %s - %dm (priority %s, energy %s) %s\n",
			status, t.Name, t.DurationMin, t.Priority, t.Energy, t.ID)
		if t.DueAt != nil {
			ctx.printf("      Due: %s\n", t.DueAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.CompleteTask(ctx.ctx(), ctx.UserID, c.ID, ctx.now()); err != nil {
		return err
	}
	ctx.printf("Completed task %s\n", c.ID)
	return nil
}

type ProjectCmd struct {
	Add  ProjectAddCmd  `cmd:"" help:"Add a new project."`
	List ProjectListCmd `cmd:"" help:"List projects."`
}

type ProjectAddCmd struct {
	Name     string `arg:"" help:"Project name."`
	Duration int    `short:"d" help:"Duration in minutes; 0 derives it from the project's tasks."`
	Priority string `short:"p" help:"Priority tier." default:"none"`
	Energy   string `short:"e" help:"Energy tier." default:"none"`
	Stage    string `short:"s" help:"Stage (research, test, build, refine, release)."`
	Goal     string `help:"Goal ID the project serves."`
	Skill    string `help:"Skill ID the project practices."`
	Location string `help:"Where the project work must happen."`
	Due      string `help:"Due date (YYYY-MM-DD or RFC3339)."`
}

func (c *ProjectAddCmd) Run(ctx *Context) error {
	cal, _, err := ctx.calendar()
	if err != nil {
		return err
	}
	priority, energy, err := parseTiers(c.Priority, c.Energy)
	if err != nil {
		return err
	}
	stage, err := models.ParseStage(c.Stage)
	if err != nil {
		return err
	}
	due, err := parseDue(c.Due, cal, ctx.now())
	if err != nil {
		return err
	}

	project := models.Project{
		ID:          uuid.New().String(),
		Name:        c.Name,
		DurationMin: c.Duration,
		Priority:    priority,
		Energy:      energy,
		Stage:       stage,
		GoalID:      c.Goal,
		SkillID:     c.Skill,
		Location:    c.Location,
		DueAt:       due,
		CreatedAt:   ctx.now(),
	}
	if err := validation.Project(project); err != nil {
		return err
	}
	if err := ctx.Store.AddProject(ctx.ctx(), ctx.UserID, project); err != nil {
		return err
	}
	ctx.printf("Added project: %s (%s)\n", project.Name, project.ID)
	return nil
}

type ProjectListCmd struct {
	All bool `short:"a" help:"Include completed projects."`
}

func (c *ProjectListCmd) Run(ctx *Context) error {
	projects, err := ctx.Store.ListProjects(ctx.ctx(), ctx.UserID, c.All)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		ctx.printf("No projects found\n")
		return nil
	}
	tasks, err := ctx.Store.ListTasks(ctx.ctx(), ctx.UserID, false)
	if err != nil {
		return err
	}
	open := make(map[string]int)
	for _, t := range tasks {
		open[t.ProjectID]++
	}

	ctx.printf("Projects:\n")
	for _, p := range projects {
		ctx.printf("  %s - stage %s, priority %s, %d open tasks %s\n",
			p.Name, orDash(string(p.Stage)), p.Priority, open[p.ID], p.ID)
	}
	return nil
}

type GoalCmd struct {
	Add GoalAddCmd `cmd:"" help:"Add a new goal."`
}

type GoalAddCmd struct {
	Name     string  `arg:"" help:"Goal name."`
	Priority string  `short:"p" help:"Priority tier." default:"none"`
	Boost    float64 `help:"Manual weight boost."`
	Due      string  `help:"Due date (YYYY-MM-DD or RFC3339)."`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	cal, _, err := ctx.calendar()
	if err != nil {
		return err
	}
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	due, err := parseDue(c.Due, cal, ctx.now())
	if err != nil {
		return err
	}

	now := ctx.now()
	goal := models.Goal{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Priority:  priority,
		Boost:     c.Boost,
		DueAt:     due,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validation.Goal(goal); err != nil {
		return err
	}
	if err := ctx.Store.AddGoal(ctx.ctx(), ctx.UserID, goal); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	ctx.printf("Added goal: %s (%s)\n", goal.Name, goal.ID)
	return nil
}
