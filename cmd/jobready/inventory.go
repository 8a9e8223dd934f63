package main

import (
	"fmt"

	"github.com/jonathan/jobready/internal/types"
	"github.com/spf13/cobra"
)

var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "Generate and list skill tests",
}

var testsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate beginner, intermediate and advanced tests per skill",
	Long:  "Generate beginner, intermediate and advanced tests per skill. Without --skill the active sprint's skills are used.",
	RunE:  runTestsGenerate,
}

var testsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored skill tests",
	RunE:  runTestsList,
}

var skillsetCmd = &cobra.Command{
	Use:   "skillset",
	Short: "Maintain the categorized master skillset",
}

var skillsetUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Merge a candidate profile and mastered skills into the master skillset",
	RunE:  runSkillsetUpdate,
}

var skillsetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the master skillset as JSON",
	RunE:  runSkillsetShow,
}

var (
	testSkills      []string
	skillsetProfile string
)

func init() {
	testsGenerateCmd.Flags().StringArrayVarP(&testSkills, "skill", "s", nil, "Skill to generate tests for (repeatable)")
	testsCmd.AddCommand(testsGenerateCmd, testsListCmd)

	skillsetUpdateCmd.Flags().StringVarP(&skillsetProfile, "profile", "p", "", "Path to candidate profile JSON (required)")
	_ = skillsetUpdateCmd.MarkFlagRequired("profile")
	skillsetCmd.AddCommand(skillsetUpdateCmd, skillsetShowCmd)

	rootCmd.AddCommand(testsCmd, skillsetCmd)
}

func runTestsGenerate(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tests, err := s.engine.GenerateSkillTests(commandContext(cmd), testSkills)
	if err != nil {
		return fmt.Errorf("failed to generate skill tests: %w", err)
	}
	if len(tests) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No skills to test: pass --skill or start a sprint")
		return nil
	}
	printTests(cmd, tests)
	return nil
}

func runTestsList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tests, err := s.engine.SkillTests(commandContext(cmd))
	if err != nil {
		return err
	}
	printTests(cmd, tests)
	return nil
}

func printTests(cmd *cobra.Command, tests []types.SkillTest) {
	out := cmd.OutOrStdout()
	for _, t := range tests {
		fmt.Fprintf(out, "%s\n", t.Skill)
		for _, tier := range t.Tiers {
			fmt.Fprintf(out, "  %-12s %2d questions, pass at %d%%\n", tier.Level, tier.Questions, tier.PassThreshold)
		}
	}
}

func runSkillsetUpdate(cmd *cobra.Command, _ []string) error {
	var profile types.CandidateProfile
	if err := readJSONFile(skillsetProfile, &profile); err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	_, added, err := s.engine.UpdateMasterSkillset(commandContext(cmd), &profile)
	if err != nil {
		return fmt.Errorf("failed to update master skillset: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Master skillset updated: %d new entries\n", added)
	return nil
}

func runSkillsetShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	set, err := s.engine.MasterSkillset(commandContext(cmd))
	if err != nil {
		return err
	}
	return writeJSON(cmd, set)
}
