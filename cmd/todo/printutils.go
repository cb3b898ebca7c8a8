package main

import (
	"strconv"
	"time"

	"github.com/benjamonnguyen/todogo"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const timestampLayout = "Mon Jan 02 15:04:05 MST 2006"

var (
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTaskTable renders the list/query table; full adds the report's
// created/completed/deleted columns.
func renderTaskTable(tasks []todogo.Task, dateFormat string, full bool) string {
	headers := []string{"ID", "Age", "Due Date", "Priority", "Task"}
	if full {
		headers = append(headers, "Created", "Completed", "Deleted")
	}

	tbl := table.New().
		Headers(headers...).
		BorderStyle(faintStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Inherit(headerStyle)
			}
			return cellStyle
		})

	for _, t := range tasks {
		row := []string{
			strconv.Itoa(t.ID),
			formatAge(t.CreatedAt),
			formatDueDate(t, dateFormat),
			strconv.Itoa(int(t.Priority)),
			t.Name,
		}
		if full {
			row = append(row,
				t.CreatedAt.Format(timestampLayout),
				formatCompleted(t),
				formatDeleted(t),
			)
		}
		tbl.Row(row...)
	}

	return tbl.Render()
}

func formatAge(createdAt time.Time) string {
	days := int(time.Since(createdAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return strconv.Itoa(days) + "d"
}

func formatDueDate(t todogo.Task, dateFormat string) string {
	if !t.HasDueDate() {
		return "-"
	}
	return t.DueDate.Format(dateFormat)
}

func formatCompleted(t todogo.Task) string {
	if !t.IsCompleted() {
		return "-"
	}
	return t.CompletedAt.Format(timestampLayout)
}

func formatDeleted(t todogo.Task) string {
	if t.Deleted {
		return "Yes"
	}
	return "No"
}
