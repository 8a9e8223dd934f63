package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate workflow documents against their JSON schemas",
	Long: `Without flags, every stored document is checked against its embedded schema.
With --json, a single file is checked against a stored document's schema (--document)
or against a schema file (--schema).`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var (
	validateJSONFile   string
	validateDocument   string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVar(&validateJSONFile, "json", "", "JSON file to validate")
	validateCmd.Flags().StringVar(&validateDocument, "document", "", "document whose schema applies to --json")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "schema file that applies to --json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateDocument != "" && validateSchemaFile != "" {
		return errors.New("--document and --schema are mutually exclusive")
	}
	if validateJSONFile == "" {
		if validateDocument != "" || validateSchemaFile != "" {
			return errors.New("--json is required with --document or --schema")
		}
		return validateStored(cmd)
	}

	data, err := os.ReadFile(validateJSONFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", validateJSONFile, err)
	}

	switch {
	case validateSchemaFile != "":
		schema, err := os.ReadFile(validateSchemaFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", validateSchemaFile, err)
		}
		err = schemas.ValidateJSONString(string(schema), string(data))
		return reportValidation(cmd, validateJSONFile, err)
	case validateDocument != "":
		if !schemas.HasSchema(validateDocument) {
			return apperr.NotFound("validate", fmt.Sprintf("no schema for document %q", validateDocument), nil)
		}
		return reportValidation(cmd, validateJSONFile, schemas.ValidateDocument(validateDocument, data))
	default:
		return errors.New("--json needs --document or --schema")
	}
}

// validateStored checks every schema-backed document in the configured store.
// Documents that were never written are reported and skipped. The engine is
// not loaded, so broken documents are reported instead of failing the load.
func validateStored(cmd *cobra.Command) error {
	_, backend, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	failed := 0
	for _, name := range schemas.Documents() {
		data, err := backend.Read(ctx, name)
		if errors.Is(err, apperr.ErrNotFound) {
			fmt.Fprintf(out, "%s: not written yet\n", name)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := schemas.ValidateDocument(name, data); err != nil {
			failed++
			fmt.Fprintln(out, strings.TrimRight(err.Error(), "\n"))
			continue
		}
		fmt.Fprintf(out, "%s: ok\n", name)
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d document(s) do not match their schema", failed)
	}
	fmt.Fprintln(out, "Validation passed")
	return nil
}

func reportValidation(cmd *cobra.Command, path string, err error) error {
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprint(cmd.OutOrStdout(), verr.Error())
		return fmt.Errorf("validation failed: %s has %d error(s)", path, len(verr.Errors))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", path)
	return nil
}
