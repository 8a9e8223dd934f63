package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect learning plans",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a learning plan from a stored job analysis",
	RunE:  runPlanGenerate,
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a stored learning plan",
	Long:  "Show a stored learning plan, the most recent one unless --plan-id is given.",
	RunE:  runPlanShow,
}

var (
	planJobID  string
	planMode   string
	planID     string
	planFormat string
)

func init() {
	planGenerateCmd.Flags().StringVar(&planJobID, "job-id", "", "Job ID of an analyzed job (required)")
	planGenerateCmd.Flags().StringVar(&planMode, "mode", string(types.ModeStandard), "Plan mode: standard or reverse")
	_ = planGenerateCmd.MarkFlagRequired("job-id")

	planShowCmd.Flags().StringVar(&planID, "plan-id", "", "Plan ID (default is the most recent plan)")
	planShowCmd.Flags().StringVarP(&planFormat, "format", "f", "text", "Output format: text, json or yaml")

	planCmd.AddCommand(planGenerateCmd, planShowCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlanGenerate(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	plan, err := s.engine.GeneratePlan(commandContext(cmd), planJobID, types.Mode(planMode))
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}

	s.printer.PrintPlan(plan)
	return nil
}

func runPlanShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	plans, err := s.engine.Plans(commandContext(cmd))
	if err != nil {
		return err
	}
	plan, err := selectPlan(plans, planID)
	if err != nil {
		return err
	}

	switch planFormat {
	case "json":
		return writeJSON(cmd, plan)
	case "yaml":
		out, err := toYAML(plan)
		if err != nil {
			return fmt.Errorf("failed to encode plan as yaml: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	case "text":
		s.printer.PrintPlan(plan)
		return nil
	default:
		return fmt.Errorf("unknown format %q: use text, json or yaml", planFormat)
	}
}

// selectPlan returns the plan with id, or the last plan when id is empty.
func selectPlan(plans []types.LearningPlan, id string) (*types.LearningPlan, error) {
	if len(plans) == 0 {
		return nil, apperr.NotFound("show plan", "no learning plans yet, run 'plan generate' first", nil)
	}
	if id == "" {
		return &plans[len(plans)-1], nil
	}
	for i := range plans {
		if plans[i].PlanID == id {
			return &plans[i], nil
		}
	}
	return nil, apperr.NotFound("show plan", fmt.Sprintf("no plan with id %s", id), nil)
}

// toYAML renders v as block-style YAML with the keys and order of its JSON form.
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
