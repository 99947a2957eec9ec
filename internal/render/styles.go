// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     render
// Description: Styles for terminal output of trees, tokens and diagnostics
// Author:      msto63
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette - shared with the explorer TUI
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
)

// Tree styles
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NodeStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	EnumeratorStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingRight(1)
)

// Table styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Diagnostic styles
var (
	ErrorLabelStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	GutterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	CaretStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	FailStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
