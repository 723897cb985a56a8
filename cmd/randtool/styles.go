package main

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

func verdict(ok bool) string {
	if ok {
		return passStyle.Render("PASS")
	}
	return failStyle.Render("FAIL")
}
