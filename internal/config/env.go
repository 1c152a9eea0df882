package config

import "os"

// envVars maps environment variables to config fields.
var envVars = []struct {
	name  string
	field string
}{
	{"TASKLIST_FILE", "task_file"},
	{"TASKLIST_SCHEMA", "schema_file"},
	{"TASKLIST_COLOR", "color"},
	{"TASKLIST_TIMEZONE", "timezone"},
	{"TASKLIST_LOG_LEVEL", "log_level"},
	{"TASKLIST_LOG_FORMAT", "log_format"},
	{"TASKLIST_LOG_TIMESTAMPS", "log_timestamps"},
	{"TASKLIST_LOG_CALLER", "log_caller"},
}

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	for _, env := range envVars {
		v := os.Getenv(env.name)
		if v == "" {
			continue
		}
		switch env.field {
		case "task_file":
			cfg.TaskFile = v
		case "schema_file":
			cfg.SchemaFile = v
		case "color":
			cfg.Color = v
		case "timezone":
			cfg.Timezone = v
		case "log_level":
			cfg.LogLevel = v
		case "log_format":
			cfg.LogFormat = v
		case "log_timestamps":
			cfg.LogTimestamps = boolFromString(v)
		case "log_caller":
			cfg.LogCaller = boolFromString(v)
		}
		if sources != nil {
			sources[env.field] = SourceEnv
		}
	}
}
