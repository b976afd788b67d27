package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fireproofed/quotelens/internal/model"
)

// CLIFormatter renders an analysis for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{styles: NewStyles()}
}

// FormatSummary renders the full analysis report.
func (f *CLIFormatter) FormatSummary(analysis *model.Analysis) string {
	if analysis == nil {
		return f.styles.Error.Render("No analysis available")
	}

	sections := []string{
		f.formatHeader(analysis),
		f.formatScores(analysis.Summary),
		f.formatRedFlags(analysis.RedFlags),
	}

	if len(analysis.CoverageGaps) > 0 {
		sections = append(sections, f.formatCoverageGaps(analysis.CoverageGaps))
	}
	if len(analysis.SystemsDetected) > 0 {
		sections = append(sections, f.formatSystems(analysis.SystemsDetected))
	}
	if len(analysis.SupplierInsights) > 0 {
		sections = append(sections, f.formatInsights(analysis.SupplierInsights))
	}
	sections = append(sections, f.formatRecommendations(analysis.Summary))

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatHeader(analysis *model.Analysis) string {
	title := f.styles.Title.Render("📊 Quote Intelligence Report")
	project := f.styles.Subtitle.Render(fmt.Sprintf("Project: %s (%d quotes)",
		analysis.ProjectID, analysis.QuotesAnalyzed))
	generated := f.styles.Subtle.Render(fmt.Sprintf("Generated: %s",
		analysis.AnalyzedAt.Format(time.RFC3339)))

	return fmt.Sprintf("%s\n%s\n%s", title, project, generated)
}

func (f *CLIFormatter) formatScores(summary model.AnalysisSummary) string {
	coverage := f.scoreLine("Coverage", summary.CoverageScore)
	quality := f.scoreLine("Quality", summary.AverageQualityScore*100)

	stats := []string{
		fmt.Sprintf("%s %s", f.styles.Subtle.Render("Red flags:"),
			f.styles.Info.Render(fmt.Sprintf("%d", summary.TotalRedFlags))),
		fmt.Sprintf("%s %s", f.styles.Subtle.Render("Critical:"),
			f.styles.Error.Render(fmt.Sprintf("%d", summary.CriticalIssues))),
		fmt.Sprintf("%s %s", f.styles.Subtle.Render("Best value:"),
			f.styles.Success.Render(summary.BestValueSupplier)),
		fmt.Sprintf("%s %s", f.styles.Subtle.Render("Most complete:"),
			f.styles.Info.Render(summary.MostCompleteSupplier)),
	}
	box := f.styles.Box.Render(strings.Join(stats, "  │  "))

	return fmt.Sprintf("%s\n%s\n%s", coverage, quality, box)
}

// scoreLine renders a labelled 0-100 score with a progress bar.
func (f *CLIFormatter) scoreLine(label string, score float64) string {
	style := f.styles.ForScore(score)

	barWidth := 30
	filled := int(float64(barWidth) * score / 100)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	text := style.Render(fmt.Sprintf("%s: %.1f%%", label, score))
	return fmt.Sprintf("%s\n%s", text, style.Render(bar))
}

func (f *CLIFormatter) formatRedFlags(flags []model.RedFlag) string {
	title := f.styles.Subtitle.Render("Red Flags:")
	if len(flags) == 0 {
		return title + "\n" + f.styles.Success.Render("✅ No red flags found!")
	}

	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
	}

	var lines []string
	for _, severity := range severities {
		for _, flag := range flags {
			if flag.Severity != severity {
				continue
			}
			icon := severityIcon(severity)
			style := f.styles.ForSeverity(severity)
			lines = append(lines, style.Render(fmt.Sprintf("%s %s", icon, flag.Title)))
			lines = append(lines, "  "+f.styles.Normal.Render(flag.Description))
			if flag.Recommendation != "" {
				lines = append(lines, "  "+f.styles.Subtle.Render("→ "+flag.Recommendation))
			}
		}
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatCoverageGaps(gaps []model.CoverageGap) string {
	title := f.styles.Subtitle.Render("Coverage Gaps:")

	var lines []string
	for _, gap := range gaps {
		lines = append(lines, f.styles.Warning.Render("▲ "+gap.Title))
		lines = append(lines, "  "+f.styles.Normal.Render(gap.Description))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatSystems(systems []model.SystemDetected) string {
	title := f.styles.Subtitle.Render("Systems Detected:")

	nameWidth := 34
	countWidth := 8
	valueWidth := 14

	headerStyle := f.styles.Subtle.Bold(true)
	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		nameWidth, "System",
		countWidth, "Items",
		valueWidth, "Value",
		"Confidence")
	rows := []string{
		headerStyle.Render(header),
		f.styles.Subtle.Render(strings.Repeat("─", len(header))),
	}

	limit := 10
	if len(systems) < limit {
		limit = len(systems)
	}

	for i := 0; i < limit; i++ {
		sys := systems[i]

		name := sys.SystemName
		if len(name) > nameWidth-1 {
			name = name[:nameWidth-4] + "..."
		}

		var confidenceStyle lipgloss.Style
		switch {
		case sys.Confidence >= 0.9:
			confidenceStyle = f.styles.Success
		case sys.Confidence >= 0.7:
			confidenceStyle = f.styles.Warning
		default:
			confidenceStyle = f.styles.Error
		}

		rows = append(rows, fmt.Sprintf("%-*s %-*s %-*s %s",
			nameWidth, name,
			countWidth, fmt.Sprintf("%d", sys.ItemCount),
			valueWidth, fmt.Sprintf("$%.2f", sys.TotalValue),
			confidenceStyle.Render(fmt.Sprintf("%.0f%%", sys.Confidence*100))))
	}

	table := strings.Join(rows, "\n")
	if len(systems) > limit {
		table += "\n" + f.styles.Subtle.Render(fmt.Sprintf("... and %d more systems", len(systems)-limit))
	}

	return title + "\n" + table
}

func (f *CLIFormatter) formatInsights(insights []model.SupplierInsight) string {
	title := f.styles.Subtitle.Render("💡 Supplier Insights:")

	formatted := make([]string, 0, len(insights))
	for _, insight := range insights {
		bullet := f.styles.Info.Render("•")
		text := f.styles.Normal.Render(insight.Description)
		formatted = append(formatted, fmt.Sprintf("%s %s", bullet, text))
	}

	return title + "\n" + strings.Join(formatted, "\n")
}

func (f *CLIFormatter) formatRecommendations(summary model.AnalysisSummary) string {
	title := f.styles.Subtitle.Render("Recommendations:")

	var lines []string
	if summary.CriticalIssues > 0 {
		lines = append(lines, f.styles.Error.Render(
			fmt.Sprintf("• Resolve %d critical issue(s) before awarding", summary.CriticalIssues)))
	}
	if summary.CoverageScore < 80 {
		lines = append(lines, f.styles.Warning.Render(
			"• Scope coverage is uneven across suppliers; level the playing field before comparison"))
	}
	if summary.BestValueSupplier != "N/A" {
		lines = append(lines, f.styles.Normal.Render(
			fmt.Sprintf("• %s offers the lowest total; verify its scope matches %s's completeness",
				summary.BestValueSupplier, summary.MostCompleteSupplier)))
	}
	if len(lines) == 0 {
		lines = append(lines, f.styles.Success.Render("• Quotes look consistent and complete"))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func severityIcon(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "🚨"
	case model.SeverityHigh:
		return "⚠️"
	case model.SeverityMedium:
		return "⚡"
	case model.SeverityLow:
		return "💡"
	default:
		return "•"
	}
}
