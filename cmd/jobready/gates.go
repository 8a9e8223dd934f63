package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/jobready/internal/types"
	"github.com/jonathan/jobready/internal/workflow"
	"github.com/spf13/cobra"
)

var gatesCmd = &cobra.Command{
	Use:   "gates",
	Short: "Check the quality gates",
	Long:  "Check the quality gates against the current state. With --record, newly passed gates are recorded and the stage advances.",
	RunE:  runGates,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the workflow status",
	RunE:  runStatus,
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Manage the current match score",
}

var scoreSetCmd = &cobra.Command{
	Use:   "set SCORE",
	Short: "Set the current match score (0-100)",
	Args:  cobra.ExactArgs(1),
	RunE:  runScoreSet,
}

var brandCmd = &cobra.Command{
	Use:       "brand ready|unready",
	Short:     "Mark the personal brand as ready or not ready",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"ready", "unready"},
	RunE:      runBrand,
}

var networkCmd = &cobra.Command{
	Use:       "network ready|unready",
	Short:     "Mark the network as ready or not ready",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"ready", "unready"},
	RunE:      runNetwork,
}

var gatesRecord bool

func init() {
	gatesCmd.Flags().BoolVar(&gatesRecord, "record", false, "Record newly passed gates")

	scoreCmd.AddCommand(scoreSetCmd)
	rootCmd.AddCommand(gatesCmd, statusCmd, scoreCmd, brandCmd, networkCmd)
}

func gateOrder() []types.GateName {
	names := make([]types.GateName, 0, len(workflow.Gates))
	for _, g := range workflow.Gates {
		names = append(names, g.Name)
	}
	return names
}

func runGates(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if gatesRecord {
		passed, err := s.engine.EvaluateGates(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to record gates: %w", err)
		}
		for _, gate := range passed {
			fmt.Fprintf(cmd.OutOrStdout(), "Gate passed: %s\n", gate)
		}
	}

	s.printer.PrintGates(gateOrder(), s.engine.CheckQualityGates())
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.engine.State()
	if active, ok := s.engine.ActiveSprint(); ok {
		s.printer.PrintStatus(&state, &active)
	} else {
		s.printer.PrintStatus(&state, nil)
	}
	return nil
}

func runScoreSet(cmd *cobra.Command, args []string) error {
	score, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", args[0], err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	passed, err := s.engine.SetCurrentScore(commandContext(cmd), score)
	if err != nil {
		return fmt.Errorf("failed to set score: %w", err)
	}
	printTransition(cmd, s, passed)
	return nil
}

func runBrand(cmd *cobra.Command, args []string) error {
	ready, err := parseReadiness(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	passed, err := s.engine.SetBrandReady(commandContext(cmd), ready)
	if err != nil {
		return fmt.Errorf("failed to update brand readiness: %w", err)
	}
	printTransition(cmd, s, passed)
	return nil
}

func runNetwork(cmd *cobra.Command, args []string) error {
	ready, err := parseReadiness(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	passed, err := s.engine.SetNetworkReady(commandContext(cmd), ready)
	if err != nil {
		return fmt.Errorf("failed to update network readiness: %w", err)
	}
	printTransition(cmd, s, passed)
	return nil
}

func parseReadiness(arg string) (bool, error) {
	switch arg {
	case "ready":
		return true, nil
	case "unready":
		return false, nil
	default:
		return false, fmt.Errorf("invalid argument %q: use ready or unready", arg)
	}
}

func printTransition(cmd *cobra.Command, s *session, passed []types.GateName) {
	out := cmd.OutOrStdout()
	for _, gate := range passed {
		fmt.Fprintf(out, "Gate passed: %s\n", gate)
	}
	state := s.engine.State()
	fmt.Fprintf(out, "Score: %.1f  Stage: %s\n", state.CurrentScore, state.CurrentStage)
}
