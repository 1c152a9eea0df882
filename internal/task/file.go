package task

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist/internal/utils"
)

// bundledSchemaURL is the $id of the embedded schema.
const bundledSchemaURL = "https://github.com/nibzard/tasklist/tasklist.schema.json"

//go:embed tasklist.schema.json
var bundledSchema []byte

// BundledSchema returns a copy of the embedded JSON Schema for task files.
func BundledSchema() []byte {
	return bytes.Clone(bundledSchema)
}

// Load reads a task file. A missing file yields an empty list.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewList(), nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	l, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse task file %s: %w", path, err)
	}
	return l, nil
}

// Decode parses task file contents. Null entries are skipped.
func Decode(data []byte) (*List, error) {
	var entries []*Task
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	l := NewList()
	for i, t := range entries {
		if t == nil {
			continue
		}
		if err := t.Check(); err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("[%d]", i), Err: err}
		}
		l.tasks = append(l.tasks, *t)
	}
	return l, nil
}

// Encode returns the task file contents for l.
func (l *List) Encode() ([]byte, error) {
	tasks := l.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the list to path with 2-space indentation.
func (l *List) Save(path string) error {
	data, err := l.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create task file directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // path to the error location, e.g. "[2].priority"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath names a JSON Schema file to use instead of the bundled one.
	// When it cannot be read or compiled, minimal checks are used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
	Tasks      int  // number of non-null entries
}

// ValidateFile reads path and validates its contents.
func ValidateFile(path string, opts ValidationOptions) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return Validate(data, opts), nil
}

// Validate checks task file contents.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("invalid JSON: %w", err),
		})
		return result
	}
	if items, ok := doc.([]interface{}); ok {
		for _, item := range items {
			if item != nil {
				result.Tasks++
			}
		}
	}

	schema, warning := compileSchema(opts.SchemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema != nil {
		result.UsedSchema = true
		if err := schema.Validate(doc); err != nil {
			result.Valid = false
			appendSchemaErrors(result, err)
		}
	} else {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	// Values the schema cannot express, such as real calendar dates.
	validateEntries(data, result)
	return result
}

func compileSchema(schemaPath string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if schemaPath == "" {
		if err := compiler.AddResource(bundledSchemaURL, bytes.NewReader(bundledSchema)); err != nil {
			return nil, fmt.Sprintf("invalid bundled schema: %v", err)
		}
		schema, err := compiler.Compile(bundledSchemaURL)
		if err != nil {
			return nil, fmt.Sprintf("invalid bundled schema: %v", err)
		}
		return schema, ""
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// rawEntry mirrors Task with plain strings so each field can be checked alone.
type rawEntry struct {
	Task     *string `json:"task"`
	Priority *string `json:"priority"`
	DataTime *string `json:"dataTime"`
}

// validateEntries performs the minimal checks shared by both modes.
// Errors already reported for the same path are not repeated.
func validateEntries(data []byte, result *ValidationResult) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		addOnce(result, &ValidationError{Err: errors.New("task file must be an array")})
		return
	}

	for i, raw := range entries {
		path := fmt.Sprintf("[%d]", i)
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var e rawEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			addOnce(result, &ValidationError{Path: path, Err: errors.New("entry must be an object with string fields")})
			continue
		}
		if e.Task == nil || strings.TrimSpace(*e.Task) == "" {
			addOnce(result, &ValidationError{Path: path + ".task", Err: ErrBlankDescription})
		}
		if e.Priority == nil {
			addOnce(result, &ValidationError{Path: path + ".priority", Err: errors.New("missing required field")})
		} else if _, err := ParsePriority(*e.Priority); err != nil || *e.Priority != strings.ToUpper(*e.Priority) {
			addOnce(result, &ValidationError{Path: path + ".priority", Err: fmt.Errorf("invalid priority %q, must be one of: C, H, N, L", *e.Priority)})
		}
		if e.DataTime == nil {
			addOnce(result, &ValidationError{Path: path + ".dataTime", Err: errors.New("missing required field")})
		} else if _, err := ParseDueAt(*e.DataTime); err != nil {
			addOnce(result, &ValidationError{Path: path + ".dataTime", Err: err})
		}
	}
}

func addOnce(result *ValidationResult, verr *ValidationError) {
	for _, existing := range result.Errors {
		var prev *ValidationError
		if errors.As(existing, &prev) && prev.Path == verr.Path {
			return
		}
	}
	result.Valid = false
	result.Errors = append(result.Errors, verr)
}
