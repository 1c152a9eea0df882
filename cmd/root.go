// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/clock"
	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/prompt"
	"github.com/nibzard/tasklist/internal/render"
	"github.com/nibzard/tasklist/internal/session"
	"github.com/nibzard/tasklist/internal/task"
	"github.com/nibzard/tasklist/internal/ui"
	"github.com/nibzard/tasklist/internal/utils"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Streams are the standard streams used by commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// env is what every command gets: the loaded config and the process streams.
type env struct {
	cws     *config.ConfigWithSources
	cfg     *config.Config
	streams Streams
	logger  *log.Logger
}

// Run executes the tasklist CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWithStreams(ctx, args, Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// RunWithStreams executes the tasklist CLI on the given streams.
func RunWithStreams(ctx context.Context, args []string, streams Streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	fs.Usage = func() {
		printUsage(fs, streams.Err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, streams.Out)
		return nil
	}
	if *showVersion {
		return versionCommand(streams.Out)
	}

	cfg := cws.Config
	e := &env{
		cws:     cws,
		cfg:     cfg,
		streams: streams,
		logger:  logging.NewFromConfig(streams.Err, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
	}
	e.logger.Debug("config loaded", "task_file", cfg.TaskFile, "files", strings.Join(cws.Files, ","))

	// Determine the subcommand
	// If no args or first arg is a flag, use "run" as default
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "run":
		return runCommand(ctx, e, remainingArgs)
	case "print", "ls":
		return printCommand(e, remainingArgs)
	case "tui":
		return tuiCommand(ctx, e, remainingArgs)
	case "doctor":
		return doctorCommand(e, remainingArgs)
	case "config":
		return configCommand(e, remainingArgs)
	case "schema":
		return schemaCommand(e, remainingArgs)
	case "version":
		return versionCommand(streams.Out)
	case "help":
		printUsage(fs, streams.Out)
		return nil
	default:
		// If it's not a recognized command, it might be a task file for run
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return runCommand(ctx, e, append([]string{subcommand}, remainingArgs...))
		}
		fmt.Fprintf(streams.Err, "Unknown command: %s\n", subcommand)
		printUsage(fs, streams.Err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// taskPath returns the task file named by an optional positional argument,
// or the configured one.
func (e *env) taskPath(remaining []string) (string, error) {
	if len(remaining) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := e.cfg.TaskFile
	if len(remaining) == 1 {
		path = remaining[0]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.cfg.ProjectRoot, path)
	}
	return path, nil
}

func (e *env) dates() clock.DateProvider {
	return clock.System{Location: e.cfg.Location}
}

func (e *env) table() render.Table {
	return render.Table{Marks: ui.Marks(e.cfg.Color, e.streams.Out)}
}

// runCommand runs the interactive session.
func runCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist run", flag.ContinueOnError)
	fs.SetOutput(e.streams.Err)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := e.taskPath(fs.Args())
	if err != nil {
		return err
	}

	s, err := session.New(session.Options{
		Path:   path,
		In:     e.streams.In,
		Out:    e.streams.Out,
		Table:  e.table(),
		Dates:  e.dates(),
		Logger: e.logger,
	})
	if err != nil {
		return err
	}

	err = s.Run(ctx)
	if errors.Is(err, prompt.ErrClosed) {
		// End of input is a normal way to leave; the tasks were saved.
		return nil
	}
	return err
}

// printCommand renders the task table once.
func printCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist print", flag.ContinueOnError)
	fs.SetOutput(e.streams.Err)
	due := fs.String("due", "", "Only show tasks in these due bands (comma-separated: overdue,today,future)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := e.taskPath(fs.Args())
	if err != nil {
		return err
	}

	list, err := task.Load(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	today := e.dates().Today()

	tasks := list.Tasks()
	if *due != "" {
		bands := map[render.Urgency]bool{}
		for _, name := range utils.SplitAndTrim(*due, ",") {
			band, err := parseDue(name)
			if err != nil {
				return err
			}
			bands[band] = true
		}
		var filtered []task.Task
		for _, t := range tasks {
			if bands[render.Classify(t.DueAt.Date, today)] {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) == 0 && !list.IsEmpty() {
			fmt.Fprintf(e.streams.Out, "No tasks match the due filter %q\n", *due)
			return nil
		}
		tasks = filtered
	}

	return e.table().Render(e.streams.Out, tasks, today)
}

func parseDue(s string) (render.Urgency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overdue", "o":
		return render.Overdue, nil
	case "today", "t":
		return render.Today, nil
	case "future", "in-future", "f", "i":
		return render.InFuture, nil
	default:
		return render.None, fmt.Errorf("invalid due filter %q (expected overdue|today|future)", s)
	}
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	fs.SetOutput(e.streams.Err)
	interval := fs.Duration("interval", time.Second, "Reload interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := e.taskPath(fs.Args())
	if err != nil {
		return err
	}

	marks := render.ANSIMarks
	if e.cfg.Color == config.ColorNever {
		marks = render.PlainMarks
	}
	return ui.RunTUI(ctx, path,
		ui.WithInterval(*interval),
		ui.WithDates(e.dates()),
		ui.WithMarks(marks),
	)
}

// doctorCommand checks the configuration and the task file.
func doctorCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist doctor", flag.ContinueOnError)
	fs.SetOutput(e.streams.Err)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := e.taskPath(fs.Args())
	if err != nil {
		return err
	}
	w := e.streams.Out
	cfg := e.cfg

	fmt.Fprintln(w, "Tasklist Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(e.cws.Files) == 0 {
		fmt.Fprintln(w, "  ✅ Files: none (using defaults)")
	}
	for _, f := range e.cws.Files {
		fmt.Fprintf(w, "  ✅ File: %s\n", f)
	}
	fmt.Fprintf(w, "  ✅ Color: %s\n", cfg.Color)
	fmt.Fprintf(w, "  ✅ Time zone: %s (today is %s)\n", cfg.Location, e.dates().Today())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Task file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on end)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Fprintln(w, "  ✅ OK")
		result, err := task.ValidateFile(path, task.ValidationOptions{SchemaPath: cfg.SchemaFile})
		if err != nil {
			fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
			allOK = false
			break
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s\n", warning)
		}
		if result.Valid {
			fmt.Fprintf(w, "  ✅ Valid (%d tasks)\n", result.Tasks)
		} else {
			fmt.Fprintln(w, "  ❌ Validation failed:")
			for _, verr := range result.Errors {
				fmt.Fprintf(w, "     - %v\n", verr)
			}
			allOK = false
		}
		if *verbose && result.Valid {
			if list, err := task.Load(path); err == nil {
				writeUrgencySummary(w, list.Tasks(), e.dates().Today())
			}
		}
	}
	fmt.Fprintln(w)

	schemaLabel := cfg.SchemaFile
	if schemaLabel == "" {
		schemaLabel = "(bundled)"
	}
	fmt.Fprintf(w, "Schema file: %s\n", schemaLabel)
	if cfg.SchemaFile != "" {
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		} else if info.IsDir() {
			fmt.Fprintln(w, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Tasklist may not load the task file.")
	return fmt.Errorf("doctor checks failed")
}

func writeUrgencySummary(w io.Writer, tasks []task.Task, today clock.Date) {
	counts := map[render.Urgency]int{}
	for _, t := range tasks {
		counts[render.Classify(t.DueAt.Date, today)]++
	}
	fmt.Fprintf(w, "  Overdue: %d  Today: %d  Upcoming: %d\n",
		counts[render.Overdue], counts[render.Today], counts[render.InFuture])
}

// configCommand prints an example config file, or the effective values.
func configCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist config", flag.ContinueOnError)
	fs.SetOutput(e.streams.Err)
	show := fs.Bool("show", false, "Show effective values and where they came from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !*show {
		_, err := io.WriteString(e.streams.Out, config.ExampleConfig())
		return err
	}

	cfg := e.cfg
	values := map[string]string{
		"task_file":      cfg.TaskFile,
		"schema_file":    cfg.SchemaFile,
		"color":          cfg.Color,
		"timezone":       cfg.Timezone,
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": fmt.Sprint(cfg.LogTimestamps),
		"log_caller":     fmt.Sprint(cfg.LogCaller),
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(e.streams.Out, "%-15s = %-40q # %s\n", name, values[name], e.cws.Sources[name])
	}
	return nil
}

// schemaCommand prints the bundled JSON Schema, or writes it to a file.
func schemaCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("tasklist schema", flag.ContinueOnError)
	fs.SetOutput(e.streams.Err)
	out := fs.String("o", "", "Write the schema to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	data := task.BundledSchema()
	if *out == "" {
		_, err := e.streams.Out.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	fmt.Fprintf(e.streams.Out, "Wrote %s\n", *out)
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasklist version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - An interactive task list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [file]      Add, print, edit and delete tasks interactively (default command)")
	fmt.Fprintln(w, "  print [file]    Print the task table and exit (alias: ls)")
	fmt.Fprintln(w, "  tui [file]      Show the task table in a terminal UI that reloads the file")
	fmt.Fprintln(w, "  doctor [file]   Check the config and validate the task file")
	fmt.Fprintln(w, "  config          Print an example config file")
	fmt.Fprintln(w, "  schema          Print the JSON Schema of the task file")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print Options (use with 'print' command):")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Only show tasks in these due bands (comma-separated: overdue,today,future)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options (use with 'tui' command):")
	fmt.Fprintln(w, "  -interval duration")
	fmt.Fprintln(w, "        Reload interval (default 1s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Verbose output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -show")
	fmt.Fprintln(w, "        Show effective values and where they came from")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Schema Options (use with 'schema' command):")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Write the schema to this file")
}
