package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/tsawler/colbox"
)

var (
	pageTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	warningStyle = color.New(color.FgYellow)
	errorStyle   = color.New(color.Bold, color.FgRed)
)

// columnTable renders the column boxes of one page as a bordered table
func columnTable(p colbox.PageColumns) string {
	title := pageTitleStyle.Render(fmt.Sprintf("Page %d", p.Page)) +
		dimStyle.Render(fmt.Sprintf("  %d column(s)", len(p.Columns)))
	if len(p.Columns) == 0 {
		return title + "\n" + dimStyle.Render("  no text columns") + "\n"
	}

	var rows []string
	rows = append(rows, headerStyle.Render(fmt.Sprintf("%-3s %8s %8s %8s %8s  %s", "#", "x0", "y0", "x1", "y1", "panel")))
	for i, c := range p.Columns {
		panel := "-"
		if c.Background > 0 {
			panel = fmt.Sprintf("%d", c.Background)
		}
		b := c.BBox
		rows = append(rows, fmt.Sprintf("%-3d %8.1f %8.1f %8.1f %8.1f  %s", i+1, b.X0, b.Y0, b.X1, b.Y1, panel))
	}
	return title + "\n" + tableStyle.Render(strings.Join(rows, "\n")) + "\n"
}

// printWarnings writes warnings to w, one per line
func printWarnings(w io.Writer, warnings []colbox.Warning) {
	for _, warn := range warnings {
		warningStyle.Fprintf(w, "warning: %s\n", warn)
	}
}

func printError(w io.Writer, err error) {
	errorStyle.Fprintf(w, "error: %v\n", err)
}
