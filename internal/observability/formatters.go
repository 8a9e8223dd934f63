// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/jobready/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer renders engine results as boxed summaries.
type Printer struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer. Colors
// are used only when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(boxWidth),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		good:  r.NewStyle().Foreground(lipgloss.Color("42")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("196")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if len(line) > boxWidth-4 {
			lines[i] = line[:boxWidth-7] + "..."
		}
	}
	body := p.title.Render(title) + "\n\n" + strings.Join(lines, "\n")
	fmt.Fprintln(p.out, p.box.Render(body))
}

func (p *Printer) mark(ok bool) string {
	if ok {
		return p.good.Render("✓")
	}
	return p.bad.Render("✗")
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintAnalysis outputs the scores, gaps and top recommendations of a job analysis.
func (p *Printer) PrintAnalysis(record *types.AnalysisRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:      %s @ %s\n", record.Title, record.Company))
	sb.WriteString(fmt.Sprintf("Job ID:   %s\n", record.JobID))
	sb.WriteString(fmt.Sprintf("Quick:    %.1f\n", record.Score.TotalScore))
	sb.WriteString(fmt.Sprintf("Detailed: %.1f\n\n", record.DetailedScore.TotalScore))

	sb.WriteString("Categories:\n")
	for _, cat := range types.Categories {
		sb.WriteString(fmt.Sprintf("  %-17s %6.1f\n", cat, record.DetailedScore.CategoryScores[cat]))
	}
	sb.WriteString("\n")

	writeList(&sb, "Missing required", record.Gaps.MissingRequiredSkills, maxItemsToShow)
	writeList(&sb, "Missing preferred", record.Gaps.MissingPreferredSkills, 3)
	if record.Gaps.ExperienceGap > 0 {
		sb.WriteString(fmt.Sprintf("Experience gap: %.1f years\n", record.Gaps.ExperienceGap))
	}
	if record.Gaps.EducationGap != "" && record.Gaps.EducationGap != "None" {
		sb.WriteString(fmt.Sprintf("Education: %s\n", record.Gaps.EducationGap))
	}
	writeList(&sb, "\nRecommendations", record.Recommendations, maxItemsToShow)

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlan outputs the tiers and milestones of a learning plan.
func (p *Printer) PrintPlan(plan *types.LearningPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Plan:     %s\n", plan.PlanID))
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", plan.Mode))
	sb.WriteString(fmt.Sprintf("Duration: %s\n\n", plan.Duration))

	study := make([]string, 0, len(plan.Levels.Study))
	for _, item := range plan.Levels.Study {
		study = append(study, fmt.Sprintf("%s [%s]", item.Skill, item.Priority))
	}
	practice := make([]string, 0, len(plan.Levels.Practice))
	for _, item := range plan.Levels.Practice {
		practice = append(practice, item.Skill)
	}
	courses := make([]string, 0, len(plan.Levels.Courses))
	for _, item := range plan.Levels.Courses {
		if item.CertificationAvailable {
			courses = append(courses, item.Skill+" (certification)")
		} else {
			courses = append(courses, item.Skill)
		}
	}
	writeList(&sb, "Study", study, maxItemsToShow)
	writeList(&sb, "Practice", practice, maxItemsToShow)
	writeList(&sb, "Courses", courses, maxItemsToShow)

	if len(plan.Milestones) > 0 {
		sb.WriteString("\nMilestones:\n")
		for _, m := range plan.Milestones {
			sb.WriteString(fmt.Sprintf("  week %-2d %s\n", m.Week, m.Title))
		}
	}

	p.printBox("LEARNING PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSprint outputs the progress of a sprint.
func (p *Printer) PrintSprint(sprint *types.Sprint) {
	if sprint == nil {
		return
	}

	var sb strings.Builder
	status := "active"
	if sprint.Completed {
		status = "completed " + sprint.CompletedDate
	}
	sb.WriteString(fmt.Sprintf("Sprint:  #%d (%s)\n", sprint.SprintNumber, status))
	sb.WriteString(fmt.Sprintf("Dates:   %s → %s\n", sprint.StartDate, sprint.EndDate))
	sb.WriteString(fmt.Sprintf("Goal:    %s\n", sprint.ProjectGoal))
	sb.WriteString(fmt.Sprintf("Skills:  %s\n", strings.Join(sprint.SkillsTargeted, ", ")))
	sb.WriteString(fmt.Sprintf("Logs:    %d\n", len(sprint.DailyLogs)))
	sb.WriteString(fmt.Sprintf("Hours:   %.1f\n", sprint.TotalHours))

	if len(sprint.TestScores) > 0 {
		skills := make([]string, 0, len(sprint.TestScores))
		for skill := range sprint.TestScores {
			skills = append(skills, skill)
		}
		sort.Strings(skills)
		sb.WriteString("\nTest scores:\n")
		for _, skill := range skills {
			sb.WriteString(fmt.Sprintf("  %-20s %5.1f\n", skill, sprint.TestScores[skill]))
		}
	}

	p.printBox("SPRINT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs non-fatal warnings, one per line.
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(p.out, "%s %s\n", p.bad.Render("warning:"), w)
	}
}

// PrintGates outputs the pass/fail table of the quality gates in the given order.
func (p *Printer) PrintGates(order []types.GateName, results map[types.GateName]bool) {
	if len(order) == 0 {
		return
	}

	var sb strings.Builder
	for _, gate := range order {
		sb.WriteString(fmt.Sprintf("%s %s\n", p.mark(results[gate]), gate))
	}

	p.printBox("QUALITY GATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatus outputs the workflow state and the active sprint, if any.
func (p *Printer) PrintStatus(state *types.WorkflowState, active *types.Sprint) {
	if state == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stage:     %s\n", state.CurrentStage))
	sb.WriteString(fmt.Sprintf("Mode:      %s\n", state.Mode))
	sb.WriteString(fmt.Sprintf("Score:     %.1f (baseline %.1f, target %.1f)\n",
		state.CurrentScore, state.BaselineScore, state.TargetScore))
	sb.WriteString(fmt.Sprintf("Sprints:   %d\n", state.CurrentSprint))
	sb.WriteString(fmt.Sprintf("Projects:  %d\n", len(state.ProjectsCompleted)))
	sb.WriteString(fmt.Sprintf("Brand:     %s\n", p.mark(state.BrandReady)))
	sb.WriteString(fmt.Sprintf("Network:   %s\n", p.mark(state.NetworkReady)))
	sb.WriteString(fmt.Sprintf("Ready:     %s\n", p.mark(state.ApplicationReady)))

	gates := make([]string, 0, len(state.QualityGatesPassed))
	for _, g := range state.QualityGatesPassed {
		gates = append(gates, string(g))
	}
	if len(gates) > 0 {
		sb.WriteString(fmt.Sprintf("Gates:     %s\n", strings.Join(gates, ", ")))
	}
	sb.WriteString("\n")
	writeList(&sb, "Mastered", state.SkillsMastered, maxItemsToShow)

	if active != nil {
		sb.WriteString(fmt.Sprintf("\nActive sprint #%d: %d logs, %.1f hours, ends %s\n",
			active.SprintNumber, len(active.DailyLogs), active.TotalHours, active.EndDate))
	} else {
		sb.WriteString("\n" + p.dim.Render("No active sprint") + "\n")
	}

	p.printBox("WORKFLOW STATUS", strings.TrimSuffix(sb.String(), "\n"))
}
