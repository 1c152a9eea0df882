package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Task file (relative to the project root, supports ~ expansion)
task_file = "tasklist.json"

# JSON Schema used by "tasklist doctor"; empty uses the bundled schema
# schema_file = "tasklist.schema.json"

# Priority and due marks: auto (terminal only), always, never
color = "auto"

# Time zone used to decide which tasks are due today
timezone = "UTC"

# Diagnostics are written to stderr
log_level = "warn"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
