package config

import "flag"

// parseFlags defines and parses CLI flags.
// Only flags that were given override cfg. If sources is non-nil, it
// tracks the source of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	taskFile := cfg.TaskFile
	schemaFile := cfg.SchemaFile
	color := cfg.Color
	timezone := cfg.Timezone
	logLevel := cfg.LogLevel
	logFormat := cfg.LogFormat
	logTimestamps := cfg.LogTimestamps
	logCaller := cfg.LogCaller

	fs.StringVar(&taskFile, "file", taskFile, "Path to task file")
	fs.StringVar(&schemaFile, "schema", schemaFile, "Path to JSON Schema for doctor (default: bundled)")
	fs.StringVar(&color, "color", color, "Color marks (auto, always, never)")
	fs.StringVar(&timezone, "timezone", timezone, "Time zone used to compute today")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", logFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", logTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", logCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToField := map[string]string{
		"file":           "task_file",
		"schema":         "schema_file",
		"color":          "color",
		"timezone":       "timezone",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToField[f.Name]
		if !ok {
			return
		}
		switch field {
		case "task_file":
			cfg.TaskFile = taskFile
		case "schema_file":
			cfg.SchemaFile = schemaFile
		case "color":
			cfg.Color = color
		case "timezone":
			cfg.Timezone = timezone
		case "log_level":
			cfg.LogLevel = logLevel
		case "log_format":
			cfg.LogFormat = logFormat
		case "log_timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log_caller":
			cfg.LogCaller = logCaller
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
