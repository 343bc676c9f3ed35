package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/scheduler"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginTop(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	placedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	unplacedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// RenderPlan formats a plan for the terminal.
func RenderPlan(plan scheduler.Plan) string {
	loc := plan.Date.Location()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Plan for %s (%s)", plan.DateKey, plan.Zone)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Windows"))
	b.WriteString("\n")
	if len(plan.Windows) == 0 {
		b.WriteString("  no windows today\n")
	}
	for _, w := range plan.Windows {
		label := w.Label
		if label == "" {
			label = w.ID
		}
		b.WriteString(fmt.Sprintf("  %s  %s  energy<=%s\n",
			timeStyle.Render(w.Start.String()+"-"+w.End.String()), label, w.EnergyCap))
	}

	b.WriteString(sectionStyle.Render("Placed"))
	b.WriteString("\n")
	if len(plan.Placements) == 0 {
		b.WriteString("  nothing placed\n")
	}
	var placed []string
	for _, p := range plan.Placements {
		item, _ := plan.Item(p.ItemID)
		placed = append(placed, fmt.Sprintf("%s  %s %s",
			timeStyle.Render(p.Start.In(loc).Format("15:04")+"-"+p.End.In(loc).Format("15:04")),
			placedStyle.Render(itemName(item, p.ItemID)),
			timeStyle.Render(fmt.Sprintf("[%s, %s, w=%.0f]", item.Kind, p.WindowID, p.Weight))))
	}
	if len(placed) > 0 {
		b.WriteString(boxStyle.Render(strings.Join(placed, "\n")))
		b.WriteString("\n")
	}

	if len(plan.Unplaced) > 0 {
		b.WriteString(sectionStyle.Render("Not placed"))
		b.WriteString("\n")
		for _, u := range plan.Unplaced {
			item, _ := plan.Item(u.ItemID)
			b.WriteString(fmt.Sprintf("  %s: %s\n", unplacedStyle.Render(itemName(item, u.ItemID)), u.Reason.Explain()))
		}
	}

	if len(plan.Habits) > 0 {
		b.WriteString(sectionStyle.Render("Habits"))
		b.WriteString("\n")
		for _, h := range plan.Habits {
			status := "not due"
			if h.Due.IsDue {
				status = "due"
			}
			b.WriteString(fmt.Sprintf("  %-20s %-8s streak %d [%s]\n", h.Name, status, h.Streak.Current, h.Due.Tag))
		}
	}
	return b.String()
}

func itemName(item models.WorkItem, id string) string {
	if item.Name != "" {
		return item.Name
	}
	return id
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
