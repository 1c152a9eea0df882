// Package task holds the task model, the ordered task list and the task file.
//
// The task file (tasklist.json) is a JSON array. Each element carries the
// description, a one-letter priority and the due date and time:
//
//	[
//	  {
//	    "task": "Watch Season 9 of Game of Thrones",
//	    "priority": "L",
//	    "dataTime": "2023-05-25T19:30"
//	  }
//	]
//
// Null elements are skipped on load. A missing file is an empty list.
//
// # Priority Codes
//
//   - "C": Critical
//   - "H": High
//   - "N": Normal
//   - "L": Low
//
// # Validation
//
// Validate checks raw file contents in one of two modes:
//
// 1. JSON Schema validation against the bundled schema, or against the
// schema file named in ValidationOptions.SchemaPath.
//
// 2. Minimal fallback validation when the named schema cannot be used:
// array shape, non-blank task text, priority code and dataTime format.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - "[]" for an empty list
package task
