package intelligence

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fireproofed/quotelens/internal/model"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#FFA500")
	errorColor   = lipgloss.Color("#FF4444")
	infoColor    = lipgloss.Color("#3498DB")
	subtleColor  = lipgloss.Color("#626262")
)

// Styles contains the styling definitions for analysis report rendering.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	Box      lipgloss.Style
	Score    lipgloss.Style
	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
}

// NewStyles creates a Styles instance with the default palette.
func NewStyles() *Styles {
	s := &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primaryColor),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(infoColor),
		Success:  lipgloss.NewStyle().Foreground(successColor),
		Warning:  lipgloss.NewStyle().Foreground(warningColor),
		Error:    lipgloss.NewStyle().Foreground(errorColor),
		Info:     lipgloss.NewStyle().Foreground(infoColor),
		Subtle:   lipgloss.NewStyle().Foreground(subtleColor),
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(subtleColor).
		Padding(0, 1)

	s.Score = lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor)

	s.Critical = lipgloss.NewStyle().
		Bold(true).
		Foreground(errorColor)

	s.High = lipgloss.NewStyle().
		Bold(true).
		Foreground(warningColor)

	s.Medium = lipgloss.NewStyle().
		Foreground(infoColor)

	s.Low = lipgloss.NewStyle().
		Foreground(subtleColor)

	return s
}

// ForSeverity returns the style for the given severity level.
func (s *Styles) ForSeverity(severity model.Severity) lipgloss.Style {
	switch severity {
	case model.SeverityCritical:
		return s.Critical
	case model.SeverityHigh:
		return s.High
	case model.SeverityMedium:
		return s.Medium
	case model.SeverityLow:
		return s.Low
	default:
		return s.Normal
	}
}

// ForScore returns the style for a 0-100 score.
func (s *Styles) ForScore(score float64) lipgloss.Style {
	switch {
	case score >= 90:
		return s.Success
	case score >= 70:
		return s.Warning
	default:
		return s.Error
	}
}
