package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archscope/archscope/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(64)

	levelColors = map[string]lipgloss.Color{
		"Excellent":        success,
		"Good":             lipgloss.Color("#A3E635"),
		"Acceptable":       warning,
		"NeedsImprovement": lipgloss.Color("#FB923C"),
		"Poor":             danger,
		"Critical":         danger,
	}

	severityColors = map[domain.Severity]lipgloss.Color{
		domain.SeverityCritical: danger,
		domain.SeverityHigh:     lipgloss.Color("#FB923C"),
		domain.SeverityMedium:   warning,
		domain.SeverityLow:      dim,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 60))
)

// RenderResult renders a full analysis report for the terminal.
func RenderResult(r *domain.AnalysisResult) string {
	var b strings.Builder

	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = dim
	}
	levelStyle := lipgloss.NewStyle().Bold(true).Foreground(levelColor)

	header := headerStyle.Render("archscope") + "\n\n" +
		levelStyle.Render(fmt.Sprintf("%.2f / 5", r.Composite)) + "\n" +
		levelStyle.Render(r.Level) + "\n" +
		dimStyle.Render(fmt.Sprintf("%d files analyzed", r.TotalFiles))
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	for _, d := range r.Dimensions() {
		b.WriteString(renderDimension(d))
		b.WriteString("\n")
	}

	if findings := worstFindings(r, 10); len(findings) > 0 {
		b.WriteString(separatorLine)
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Findings"))
		b.WriteString("\n")
		for _, line := range findings {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(r.Diagnostics) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d files skipped (unreadable)", len(r.Diagnostics))))
		b.WriteString("\n")
	}

	return b.String()
}

func renderDimension(d domain.DimensionResult) string {
	bar := scoreBar(d.Score)
	name := titleStyle.Render(fmt.Sprintf("%-14s", string(d.Dimension)))
	detail := dimStyle.Render(dimensionDetail(d))
	return fmt.Sprintf("  %s %s %d/5  %s", name, bar, d.Score, detail)
}

func dimensionDetail(d domain.DimensionResult) string {
	switch d.Dimension {
	case domain.DimensionEncapsulation:
		return fmt.Sprintf("%.0f%% public (%d of %d types)", d.PublicRatio, d.Count, d.Total)
	case domain.DimensionCycles:
		return fmt.Sprintf("%d cycles in %d files", d.Count, d.Total)
	default:
		return fmt.Sprintf("%d findings in %d files", d.Count, d.Total)
	}
}

func scoreBar(score int) string {
	filled := lipgloss.NewStyle().Foreground(barColor(score)).Render(strings.Repeat("█", score))
	empty := faintStyle.Render(strings.Repeat("░", 5-score))
	return filled + empty
}

func barColor(score int) lipgloss.Color {
	switch {
	case score >= 4:
		return success
	case score >= 2:
		return warning
	default:
		return danger
	}
}

// worstFindings collects up to max findings across all dimensions,
// critical first.
func worstFindings(r *domain.AnalysisResult, max int) []string {
	var all []domain.Finding
	for _, v := range r.Layering.Violations {
		all = append(all, v)
	}
	for _, e := range r.Encapsulation.Exposures {
		all = append(all, e)
	}
	for _, l := range r.Abstraction.Leaks {
		all = append(all, l)
	}
	for _, c := range r.Cycles.Cycles {
		all = append(all, c)
	}

	order := map[domain.Severity]int{
		domain.SeverityCritical: 0,
		domain.SeverityHigh:     1,
		domain.SeverityMedium:   2,
		domain.SeverityLow:      3,
	}
	// Stable so same-severity findings keep detector order.
	sort.SliceStable(all, func(i, j int) bool {
		return order[all[i].FindingSeverity()] < order[all[j].FindingSeverity()]
	})

	var lines []string
	for _, f := range all {
		if len(lines) >= max {
			break
		}
		sev := f.FindingSeverity()
		tag := lipgloss.NewStyle().Bold(true).Foreground(severityColors[sev]).
			Render(fmt.Sprintf("%-8s", strings.ToUpper(string(sev))))
		lines = append(lines, fmt.Sprintf("  %s %s %s", tag, describeFinding(f), dimStyle.Render(f.FindingFile())))
	}
	return lines
}

func describeFinding(f domain.Finding) string {
	switch v := f.(type) {
	case domain.LayeringViolation:
		return fmt.Sprintf("%s layer references %s (%s)", v.SourceLayer, v.TargetLayer, v.Namespace)
	case domain.ExposureFinding:
		return fmt.Sprintf("public %s %s outside an exposed layer", v.Kind, v.Type)
	case domain.AbstractionFinding:
		return fmt.Sprintf("%s in %s layer", v.Issue, v.Layer)
	case domain.Cycle:
		return fmt.Sprintf("dependency cycle of %d files: %s", v.Length, strings.Join(v.Members, " → "))
	default:
		return ""
	}
}

// RenderHistory renders the score ledger as a simple trend table.
func RenderHistory(entries []domain.ScoreEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("no history recorded yet") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Score history"))
	b.WriteString("\n")
	for _, e := range entries {
		commit := e.CommitHash
		if len(commit) > 8 {
			commit = commit[:8]
		}
		b.WriteString(fmt.Sprintf("  %s  %.2f  %-16s %s\n",
			e.Timestamp, e.Composite, e.Level, dimStyle.Render(commit)))
	}
	return b.String()
}
