package tui

import "github.com/charmbracelet/lipgloss"

const sidePanelWidth = 36

var (
	primary = lipgloss.Color("#7C3AED")
	muted   = lipgloss.Color("#6C7086")
	success = lipgloss.Color("#A6E3A1")
	warning = lipgloss.Color("#F9E2AF")
	danger  = lipgloss.Color("#F38BA8")
	border  = lipgloss.Color("#45475A")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	noticeStyle  = lipgloss.NewStyle().Foreground(warning)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	okStyle      = lipgloss.NewStyle().Foreground(success)
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	markStyle    = lipgloss.NewStyle().Bold(true).Foreground(warning)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(danger).
			Foreground(danger).
			Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)
	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)
	sideBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(sidePanelWidth)
)
