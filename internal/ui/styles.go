package ui

import (
	"errors"

	"github.com/nconklindev/journeyload/internal/validate"

	"github.com/charmbracelet/lipgloss"
)

// Telemetry palette.
var (
	colorRoute   = lipgloss.Color("#2E86DE")
	colorSignal  = lipgloss.Color("#48DBFB")
	colorMuted   = lipgloss.Color("#8395A7")
	colorPass    = lipgloss.Color("#1DD1A1")
	colorFail    = lipgloss.Color("#EE5253")
	colorDropped = lipgloss.Color("#FECA57")
	colorText    = lipgloss.Color("#F5F6FA")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRoute).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorSignal).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// DefaultSheetStyle marks the Journey Event sheet in the sheet list.
	DefaultSheetStyle = lipgloss.NewStyle().
				Foreground(colorRoute).
				Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorFail).
			Bold(true)

	// SchemaPassStyle and SchemaFailStyle render the validation badge.
	SchemaPassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10161F")).
			Background(colorPass).
			Bold(true).
			Padding(0, 1)

	SchemaFailStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorFail).
			Bold(true).
			Padding(0, 1)

	// DroppedStyle lists artifact columns removed during loading.
	DroppedStyle = lipgloss.NewStyle().
			Foreground(colorDropped)

	// CoercedStyle lists columns parsed as dates.
	CoercedStyle = lipgloss.NewStyle().
			Foreground(colorSignal)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorPass).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRoute).
			Padding(1, 2)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(colorRoute)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSignal).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// schemaBadge renders the validation outcome; empty when validation did not run.
func schemaBadge(validated bool) string {
	if !validated {
		return ""
	}
	return SchemaPassStyle.Render("SCHEMA OK")
}

// schemaFailure renders a badge naming the failed contract group, or "" when
// err is not a schema failure.
func schemaFailure(err error) string {
	var se *validate.SchemaError
	if !errors.As(err, &se) {
		return ""
	}
	return SchemaFailStyle.Render("SCHEMA " + string(se.Group) + " FAILED")
}

func toggle(on bool) string {
	if on {
		return SelectedStyle.Render("[x]")
	}
	return MutedStyle.Render("[ ]")
}
