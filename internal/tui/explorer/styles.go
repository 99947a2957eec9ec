// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     explorer
// Description: Styles for the interactive syntax explorer
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package explorer

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/mote/internal/render"
)

// Logo is shown in the title panel
const Logo = "mote explorer"

// Icons
const (
	IconOK    = "● "
	IconError = "✖ "
)

// Panel styles
var (
	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorPrimary).
			Padding(0, 1)

	LogoStyle = lipgloss.NewStyle().
			Foreground(render.ColorPrimary).
			Bold(true)

	EditorPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(render.ColorSecondary)

	OutputPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(render.ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(render.ColorText).
			Padding(0, 1)
)

// Text styles
var (
	StatusOKStyle = lipgloss.NewStyle().
			Foreground(render.ColorSuccess).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(render.ColorError).
				Bold(true)

	ModeActiveStyle = lipgloss.NewStyle().
			Foreground(render.ColorAccent).
			Bold(true)

	ModeInactiveStyle = lipgloss.NewStyle().
				Foreground(render.ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(render.ColorSecondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(render.ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// RenderKeyHint renders a key binding hint
func RenderKeyHint(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}
