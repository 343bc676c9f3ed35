package weight

import (
	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
)

type taskAggregate struct {
	durationSum int
	weightSum   float64
	energy      models.Energy
	count       int
}

// ProjectItem is a project ready to be placed, with the tasks folded into it.
type ProjectItem struct {
	models.WorkItem
	Weight    float64
	TaskCount int
	TaskIDs   []string
}

// TaskItem converts a task into its engine-facing form.
func TaskItem(t models.Task) models.WorkItem {
	return models.WorkItem{
		ID:          t.ID,
		Name:        t.Name,
		Kind:        models.KindTask,
		DurationMin: t.DurationMin,
		Priority:    t.Priority,
		Energy:      t.Energy,
		Stage:       t.Stage,
		SkillID:     t.SkillID,
		GoalID:      t.GoalID,
		ProjectID:   t.ProjectID,
		Location:    t.Location,
		DueAt:       t.DueAt,
		CreatedAt:   t.CreatedAt,
	}
}

// BuildProjectItems folds tasks into their projects. A project's duration is
// its own when set, else the sum of its tasks, else the default; its energy
// is the highest of its own and its tasks'. goalWeights maps goal ID to the
// goal's weight.
func (m Model) BuildProjectItems(projects []models.Project, tasks []models.Task, goalWeights map[string]float64) []ProjectItem {
	aggregates := make(map[string]*taskAggregate)
	taskIDs := make(map[string][]string)
	for _, task := range tasks {
		if task.ProjectID == "" {
			continue
		}
		agg, ok := aggregates[task.ProjectID]
		if !ok {
			agg = &taskAggregate{}
			aggregates[task.ProjectID] = agg
		}
		if task.DurationMin > 0 {
			agg.durationSum += task.DurationMin
		}
		agg.weightSum += m.Task(TaskItem(task))
		if task.Energy > agg.energy {
			agg.energy = task.Energy
		}
		agg.count++
		taskIDs[task.ProjectID] = append(taskIDs[task.ProjectID], task.ID)
	}

	items := make([]ProjectItem, 0, len(projects))
	for _, p := range projects {
		agg := aggregates[p.ID]
		if agg == nil {
			agg = &taskAggregate{}
		}

		duration := p.DurationMin
		if duration <= 0 {
			duration = agg.durationSum
		}
		if duration <= 0 {
			duration = constants.DefaultProjectDurationMin
		}

		energy := p.Energy
		if agg.energy > energy {
			energy = agg.energy
		}

		item := models.WorkItem{
			ID:          p.ID,
			Name:        p.Name,
			Kind:        models.KindProject,
			DurationMin: duration,
			Priority:    p.Priority,
			Energy:      energy,
			Stage:       p.Stage,
			SkillID:     p.SkillID,
			GoalID:      p.GoalID,
			Location:    p.Location,
			DueAt:       p.DueAt,
			CreatedAt:   p.CreatedAt,
			ChildWeight: agg.weightSum,
			GoalWeight:  goalWeights[p.GoalID],
		}
		items = append(items, ProjectItem{
			WorkItem:  item,
			Weight:    m.Item(item),
			TaskCount: agg.count,
			TaskIDs:   taskIDs[p.ID],
		})
	}
	return items
}

// GoalWeights scores goals from the projects that reference them.
func (m Model) GoalWeights(goals []models.Goal, projects []models.Project) map[string]float64 {
	sums := make(map[string]float64)
	for _, p := range projects {
		if p.GoalID == "" {
			continue
		}
		item := models.WorkItem{Kind: models.KindProject, Priority: p.Priority, Energy: p.Energy, Stage: p.Stage, DueAt: p.DueAt}
		sums[p.GoalID] += m.Project(item, 0)
	}
	weights := make(map[string]float64, len(goals))
	for _, g := range goals {
		weights[g.ID] = m.Goal(g, sums[g.ID])
	}
	return weights
}
