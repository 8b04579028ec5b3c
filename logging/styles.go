package logging

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorRed   = lipgloss.Color("#FF6B6B")
	colorGreen = lipgloss.Color("#04B575")
	colorBlue  = lipgloss.Color("#5B8DEF")
)

// Banner styles, one per figlet block of the startup banner
var (
	BannerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorRed)

	BannerSubtitleStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	BannerToolStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			MarginBottom(1)
)
