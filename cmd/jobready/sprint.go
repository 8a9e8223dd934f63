package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/jobready/internal/types"
	"github.com/jonathan/jobready/internal/workflow"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Run two-week learning sprints",
}

var sprintStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new sprint",
	RunE:  runSprintStart,
}

var sprintLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a daily log in the active sprint",
	RunE:  runSprintLog,
}

var sprintEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active sprint with its project and test scores",
	RunE:  runSprintEnd,
}

var sprintShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active sprint",
	RunE:  runSprintShow,
}

var (
	sprintSkills  []string
	sprintGoal    string
	logHours      float64
	logConcepts   []string
	logNotes      string
	logDate       string
	endProjectURL string
	endScores     []string
	endAssumeYes  bool
)

func init() {
	sprintStartCmd.Flags().StringArrayVarP(&sprintSkills, "skill", "s", nil, "Skill targeted by the sprint (repeatable)")
	sprintStartCmd.Flags().StringVarP(&sprintGoal, "goal", "g", "", "Project goal of the sprint (required)")
	_ = sprintStartCmd.MarkFlagRequired("goal")

	sprintLogCmd.Flags().Float64Var(&logHours, "hours", 0, "Hours studied")
	sprintLogCmd.Flags().StringArrayVarP(&logConcepts, "concept", "c", nil, "Concept learned (repeatable)")
	sprintLogCmd.Flags().StringVarP(&logNotes, "notes", "n", "", "Free-form notes")
	sprintLogCmd.Flags().StringVar(&logDate, "date", "", "Log date as YYYY-MM-DD (default today)")
	_ = sprintLogCmd.MarkFlagRequired("hours")

	sprintEndCmd.Flags().StringVar(&endProjectURL, "project-url", "", "URL of the sprint project")
	sprintEndCmd.Flags().StringArrayVar(&endScores, "score", nil, "Test score as skill=N (repeatable)")
	sprintEndCmd.Flags().BoolVarP(&endAssumeYes, "yes", "y", false, "Do not ask for confirmation")

	sprintCmd.AddCommand(sprintStartCmd, sprintLogCmd, sprintEndCmd, sprintShowCmd)
	rootCmd.AddCommand(sprintCmd)
}

func runSprintStart(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sprint, err := s.engine.StartSprint(commandContext(cmd), sprintSkills, sprintGoal)
	if err != nil {
		return fmt.Errorf("failed to start sprint: %w", err)
	}

	s.printer.PrintSprint(&sprint)
	return nil
}

func runSprintLog(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	entry, err := s.engine.LogDaily(commandContext(cmd), types.DailyLogInput{
		Hours:    logHours,
		Concepts: logConcepts,
		Notes:    logNotes,
		Date:     logDate,
	})
	if errors.Is(err, workflow.ErrNoActiveSprint) {
		s.printer.PrintWarnings([]string{"no active sprint; run 'jobready sprint start' first"})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to log day: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged day %d (%s): %.1f hours\n", entry.DayNumber, entry.Date, entry.Hours)
	return nil
}

func runSprintEnd(cmd *cobra.Command, _ []string) error {
	scores, err := parseScores(endScores)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	active, ok := s.engine.ActiveSprint()
	if ok && !endAssumeYes {
		confirmed, err := confirm(fmt.Sprintf("End sprint #%d with %d daily logs?", active.SprintNumber, len(active.DailyLogs)))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Sprint left open")
			return nil
		}
	}

	result, err := s.engine.EndSprint(commandContext(cmd), types.EndSprintInput{
		ProjectURL: endProjectURL,
		TestScores: scores,
	})
	if err != nil {
		return fmt.Errorf("failed to end sprint: %w", err)
	}

	s.printer.PrintSprint(&result.Sprint)
	out := cmd.OutOrStdout()
	if len(result.NewlyMastered) > 0 {
		fmt.Fprintf(out, "Mastered: %s\n", strings.Join(result.NewlyMastered, ", "))
	}
	for _, gate := range result.GatesPassed {
		fmt.Fprintf(out, "Gate passed: %s\n", gate)
	}
	fmt.Fprintf(out, "Stage: %s\n", result.Stage)
	s.printer.PrintWarnings(result.Warnings)
	return nil
}

func runSprintShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	active, ok := s.engine.ActiveSprint()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No active sprint")
		return nil
	}
	s.printer.PrintSprint(&active)
	return nil
}

// parseScores parses skill=N pairs. A repeated skill keeps the last score.
func parseScores(pairs []string) (map[string]float64, error) {
	scores := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		skill, value, ok := strings.Cut(pair, "=")
		skill = strings.TrimSpace(skill)
		if !ok || skill == "" {
			return nil, fmt.Errorf("invalid score %q: expected skill=N", pair)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score %q: %w", pair, err)
		}
		scores[skill] = score
	}
	return scores, nil
}

func confirm(label string) (bool, error) {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return false, err
	}
	return selected == PromptYes, nil
}
