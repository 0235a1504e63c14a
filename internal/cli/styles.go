// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	ChickenIcon  = "🐔"
	CriticalIcon = "🚨"
	UnknownIcon  = "❔"
	ChartIcon    = "📊"
)

var (
	farmGreen  = lipgloss.Color("#3FA34D")
	teal       = lipgloss.Color("#4ECDC4")
	amber      = lipgloss.Color("#FFE66D")
	red        = lipgloss.Color("#FF6B6B")
	paleTeal   = lipgloss.Color("#95E1D3")
	gray       = lipgloss.Color("#666666")
	borderGray = lipgloss.Color("#333")
)

var (
	// TitleStyle renders box titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(farmGreen).MarginBottom(1)

	// SubtleStyle renders secondary details such as IDs and timestamps.
	SubtleStyle = lipgloss.NewStyle().Foreground(gray)

	// BoldStyle renders section labels.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// BoxStyle frames an interpretation or summary.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderGray).
			Padding(1, 2)

	// TableHeaderStyle underlines table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderGray)

	// TableCellStyle pads table cells.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)

	successStyle = lipgloss.NewStyle().Foreground(teal)
	warningStyle = lipgloss.NewStyle().Foreground(amber)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	infoStyle    = lipgloss.NewStyle().Foreground(paleTeal)
)

// statusLook is how one health status is drawn.
type statusLook struct {
	style lipgloss.Style
	icon  string
}

var statusLooks = map[model.Status]statusLook{
	model.StatusHealthy:  {style: successStyle, icon: SuccessIcon},
	model.StatusWarning:  {style: warningStyle, icon: WarningIcon},
	model.StatusCritical: {style: errorStyle, icon: CriticalIcon},
	model.StatusUnknown:  {style: SubtleStyle, icon: UnknownIcon},
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return successStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return errorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// StatusStyle returns the style used to render a status.
func StatusStyle(s model.Status) lipgloss.Style {
	if look, ok := statusLooks[s]; ok {
		return look.style
	}
	return SubtleStyle
}

// StatusIcon returns the icon shown next to a status.
func StatusIcon(s model.Status) string {
	if look, ok := statusLooks[s]; ok {
		return look.icon
	}
	return UnknownIcon
}

// RenderBox renders content under a title in a rounded box.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}
