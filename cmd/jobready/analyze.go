package main

import (
	"fmt"

	"github.com/jonathan/jobready/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a candidate profile against a job requirement",
	Long:  "Score a parsed candidate profile against a parsed job requirement with the quick and detailed strategies, record the gaps and recommendations, and update the current score.",
	RunE:  runAnalyze,
}

var (
	analyzeProfile string
	analyzeJob     string
	analyzeOutput  string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", "", "Path to candidate profile JSON (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "J", "", "Path to job requirement JSON (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "text", "Output format: text or json")

	_ = analyzeCmd.MarkFlagRequired("profile")
	_ = analyzeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	var profile types.CandidateProfile
	if err := readJSONFile(analyzeProfile, &profile); err != nil {
		return err
	}
	var req types.JobRequirement
	if err := readJSONFile(analyzeJob, &req); err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	record, err := s.engine.AnalyzeJob(commandContext(cmd), &profile, &req)
	if err != nil {
		return fmt.Errorf("failed to analyze job: %w", err)
	}

	if analyzeOutput == "json" {
		return writeJSON(cmd, record)
	}
	s.printer.PrintAnalysis(record)
	return nil
}
