// Package schemas provides JSON Schema validation for the persisted documents.
package schemas

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed documents/*.schema.json
var documentFS embed.FS

// Persisted document names.
const (
	AnalyzedJobs     = "analyzed_jobs"
	LearningProgress = "learning_progress"
	SprintHistory    = "sprint_history"
	SkillTests       = "skill_tests"
	WorkflowState    = "workflow_state"
	MasterSkillset   = "master_skillset"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Document string
	Errors   []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Document != "" {
		sb.WriteString(fmt.Sprintf("%s: ", ve.Document))
	}
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

// compileAll compiles every embedded schema once per process.
func compileAll() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		entries, err := documentFS.ReadDir("documents")
		if err != nil {
			compileErr = fmt.Errorf("failed to list embedded schemas: %w", err)
			return
		}
		out := make(map[string]*gojsonschema.Schema, len(entries))
		for _, e := range entries {
			file := path.Join("documents", e.Name())
			data, err := documentFS.ReadFile(file)
			if err != nil {
				compileErr = &SchemaLoadError{Path: file, Message: "failed to read embedded schema", Cause: err}
				return
			}
			schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			if err != nil {
				compileErr = &SchemaLoadError{Path: file, Message: "invalid schema", Cause: err}
				return
			}
			out[strings.TrimSuffix(e.Name(), ".schema.json")] = schema
		}
		compiled = out
	})
	return compiled, compileErr
}

// Documents returns the names of the documents that have a schema, sorted.
func Documents() []string {
	all, err := compileAll()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasSchema reports whether name has an embedded schema.
func HasSchema(name string) bool {
	all, err := compileAll()
	if err != nil {
		return false
	}
	_, ok := all[name]
	return ok
}

// ValidateDocument validates JSON content against the schema of the named
// document. Documents without a schema are accepted as is.
func ValidateDocument(name string, data []byte) error {
	all, err := compileAll()
	if err != nil {
		return err
	}
	schema, ok := all[name]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s document: %w", name, err)
	}
	return toValidationError(name, result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError("", result)
}

func toValidationError(document string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Document: document,
		Errors:   make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
