package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
)

// Day cell markers.
const (
	markActivity = "•"
	markConflict = "!"
)

// renderMonth draws the six-week grid followed by an agenda of the month's
// scheduled activities. Trip days are highlighted; a day holding at least one
// overlapping activity carries the conflict marker.
func renderMonth(trip domain.Trip, m calendar.Month, cells []calendar.Cell) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", m.Month, m.Year)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(trip.Name))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	for week := 0; week*7 < len(cells); week++ {
		row := make([]string, 0, 7)
		for _, c := range cells[week*7 : week*7+7] {
			row = append(row, renderCell(c))
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, row...), " "))
		b.WriteString("\n")
	}

	agenda := renderAgenda(trip, m, cells)
	if agenda != "" {
		b.WriteString("\n")
		b.WriteString(agenda)
	}
	return b.String()
}

func renderCell(c calendar.Cell) string {
	mark := " "
	if len(c.Entries) > 0 {
		mark = markActivity
	}
	for _, e := range c.Entries {
		if e.Conflict {
			mark = markConflict
			break
		}
	}

	num := fmt.Sprintf("%3d", c.Date.Day())
	style := dayStyle
	switch {
	case !c.IsCurrentMonth:
		style = outsideStyle
	case c.IsTripDay:
		style = tripDayStyle
	}
	markStyle := style
	if mark == markConflict {
		markStyle = conflictStyle
	}
	return style.Render(num) + markStyle.Render(mark)
}

func renderAgenda(trip domain.Trip, m calendar.Month, cells []calendar.Cell) string {
	cities := make(map[string]string, len(trip.Stops))
	for _, s := range trip.Stops {
		cities[s.ID.String()] = s.CityName
	}

	var lines []string
	for _, c := range cells {
		if !m.Contains(c.Date) {
			continue
		}
		for _, e := range c.Entries {
			lines = append(lines, agendaLine(e, cities[e.StopID.String()]))
		}
	}
	return strings.Join(lines, "\n")
}

func agendaLine(e calendar.Entry, city string) string {
	when := "all day    "
	if e.Activity.StartTime != "" {
		when = fmt.Sprintf("%-5s-%-5s", e.Activity.StartTime, e.Activity.EndTime)
	}
	line := fmt.Sprintf("%s  %s  %s", e.Date.Format("Mon Jan 02"), when, e.Activity.Name)
	if city != "" {
		line += headerStyle.Render(" (" + city + ")")
	}
	if e.Conflict {
		line += " " + conflictStyle.Render("[conflict]")
	}
	line += headerStyle.Render("  " + e.Activity.ID.String())
	return line
}

func renderBudget(b api.Budget) string {
	var sb strings.Builder
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(value)
		sb.WriteString("\n")
	}
	row("Budget", money(b.TotalBudget))
	row("Spent", money(b.TotalSpent))
	remaining := successStyle.Render(money(b.Remaining))
	if b.IsOverBudget {
		remaining = errorStyle.Render(money(-b.Remaining) + " over budget")
	}
	row("Remaining", remaining)

	if len(b.ByCategory) > 0 {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("By category"))
		sb.WriteString("\n")
		for _, c := range b.ByCategory {
			row(string(c.Category), money(c.Amount))
		}
	}
	return sb.String()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
