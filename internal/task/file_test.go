package task

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "tasklist.json")

	original := NewList(
		Task{Description: "Watch Season 9 of Game of Thrones", Priority: Low, DueAt: mustDue(t, "2023-05-25T19:30")},
		Task{Description: "line one\nline two", Priority: Critical, DueAt: mustDue(t, "2023-05-23T08:05")},
	)

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, []byte("]\n")) {
		t.Errorf("expected trailing newline, got %q", data[len(data)-3:])
	}
	if !strings.Contains(string(data), "\n  {\n    \"task\": ") {
		t.Errorf("expected 2-space indentation, got:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Tasks count: got %d, want 2", loaded.Len())
	}
	for i, want := range original.Tasks() {
		if got := loaded.Tasks()[i]; got != want {
			t.Errorf("task %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !l.IsEmpty() {
		t.Errorf("expected empty list, got %d tasks", l.Len())
	}
}

func TestSaveEmptyList(t *testing.T) {
	data, err := NewList().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Encode: got %q, want %q", data, "[]\n")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "compact file from earlier versions",
			input:     `[{"task":"a","priority":"C","dataTime":"2023-05-25T19:30"}]`,
			wantCount: 1,
		},
		{
			name:      "null entries are skipped",
			input:     `[null,{"task":"a","priority":"H","dataTime":"2023-05-25T19:30"},null]`,
			wantCount: 1,
		},
		{
			name:      "empty array",
			input:     `[]`,
			wantCount: 0,
		},
		{
			name:    "malformed dataTime",
			input:   `[{"task":"a","priority":"C","dataTime":"2023-05-25 19:30"}]`,
			wantErr: true,
		},
		{
			name:    "unknown priority",
			input:   `[{"task":"a","priority":"Z","dataTime":"2023-05-25T19:30"}]`,
			wantErr: true,
		},
		{
			name:    "blank description",
			input:   `[{"task":" ","priority":"C","dataTime":"2023-05-25T19:30"}]`,
			wantErr: true,
		},
		{
			name:    "missing dataTime",
			input:   `[{"task":"a","priority":"C"}]`,
			wantErr: true,
		},
		{
			name:    "not an array",
			input:   `{"task":"a"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Decode([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && l.Len() != tt.wantCount {
				t.Errorf("Len: got %d, want %d", l.Len(), tt.wantCount)
			}
		})
	}
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.json")
	if err := os.WriteFile(path, []byte(`[{"task":" ","priority":"C","dataTime":"2023-05-25T19:30"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "[0]" {
		t.Errorf("expected ValidationError at [0], got %v", err)
	}
	if !errors.Is(err, ErrBlankDescription) {
		t.Errorf("expected ErrBlankDescription in chain, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantPath  string
	}{
		{
			name:      "valid file",
			input:     `[{"task":"a","priority":"C","dataTime":"2023-05-25T19:30"},null]`,
			wantValid: true,
		},
		{
			name:      "bad priority",
			input:     `[{"task":"a","priority":"X","dataTime":"2023-05-25T19:30"}]`,
			wantValid: false,
			wantPath:  "[0].priority",
		},
		{
			name:      "lowercase priority",
			input:     `[{"task":"a","priority":"c","dataTime":"2023-05-25T19:30"}]`,
			wantValid: false,
			wantPath:  "[0].priority",
		},
		{
			name:      "impossible date passes the pattern but not the parser",
			input:     `[{"task":"a","priority":"C","dataTime":"2023-02-30T10:00"}]`,
			wantValid: false,
			wantPath:  "[0].dataTime",
		},
		{
			name:      "blank task",
			input:     `[{"task":"   ","priority":"C","dataTime":"2023-05-25T19:30"}]`,
			wantValid: false,
			wantPath:  "[0].task",
		},
		{
			name:      "extra field",
			input:     `[{"task":"a","priority":"C","dataTime":"2023-05-25T19:30","id":1}]`,
			wantValid: false,
			wantPath:  "[0]",
		},
		{
			name:      "not JSON",
			input:     `[{`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]byte(tt.input), ValidationOptions{})
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantPath == "" {
				return
			}
			found := false
			for _, err := range result.Errors {
				var verr *ValidationError
				if errors.As(err, &verr) && verr.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error at %s, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestValidateUsesBundledSchema(t *testing.T) {
	result := Validate([]byte(`[]`), ValidationOptions{})
	if !result.UsedSchema {
		t.Errorf("expected bundled schema to be used, warnings: %v", result.Warnings)
	}
	if !result.Valid {
		t.Errorf("empty array should be valid: %v", result.Errors)
	}
}

func TestValidateMissingSchemaFallsBack(t *testing.T) {
	opts := ValidationOptions{SchemaPath: filepath.Join(t.TempDir(), "missing.schema.json")}
	result := Validate([]byte(`[{"task":"a","priority":"X","dataTime":"2023-05-25T19:30"}]`), opts)
	if result.UsedSchema {
		t.Error("expected minimal checks")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the missing schema")
	}
	if result.Valid {
		t.Error("expected minimal checks to reject the priority")
	}
}

func TestValidateWithSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.schema.json")
	if err := os.WriteFile(path, BundledSchema(), 0644); err != nil {
		t.Fatal(err)
	}
	result := Validate([]byte(`[{"task":"a","priority":"N","dataTime":"2023-05-25T19:30"}]`), ValidationOptions{SchemaPath: path})
	if !result.UsedSchema {
		t.Errorf("expected schema file to be used, warnings: %v", result.Warnings)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %v", result.Errors)
	}
	if result.Tasks != 1 {
		t.Errorf("Tasks: got %d, want 1", result.Tasks)
	}
}
