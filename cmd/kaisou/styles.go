package main

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	mutedColor     = lipgloss.Color("#666666")
)

// styles groups the styles used for one run; plain() is used with --no-color.
type styles struct {
	header lipgloss.Style
	root   lipgloss.Style
	item   lipgloss.Style
	enum   lipgloss.Style
	muted  lipgloss.Style
}

func colorStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginTop(1),
		root:   lipgloss.NewStyle().Bold(true).Foreground(primaryColor),
		item:   lipgloss.NewStyle().Foreground(secondaryColor),
		enum:   lipgloss.NewStyle().Foreground(mutedColor).PaddingRight(1),
		muted:  lipgloss.NewStyle().Foreground(mutedColor),
	}
}

func plainStyles() styles {
	return styles{
		header: lipgloss.NewStyle().MarginTop(1),
		root:   lipgloss.NewStyle(),
		item:   lipgloss.NewStyle(),
		enum:   lipgloss.NewStyle().PaddingRight(1),
		muted:  lipgloss.NewStyle(),
	}
}

func currentStyles() styles {
	if noColor {
		return plainStyles()
	}
	return colorStyles()
}
