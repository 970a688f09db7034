// cmd/weblist/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/moreffnest/weblist-parsers/internal/config"
	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/api"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// errUsage marks command-line mistakes; they exit with status 1 after the usage text
var errUsage = errors.New("invalid usage")

// options holds the parsed command-line arguments of a command
type options struct {
	args       []string
	output     string
	format     string
	configFile string
	render     bool
	verbose    bool
	titles     bool
}

// parseOptions separates flags from positional arguments
func parseOptions(args []string) (*options, error) {
	opts := &options{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, error) {
			if i+1 >= len(args) || (strings.HasPrefix(args[i+1], "-") && args[i+1] != "-") {
				return "", fmt.Errorf("%w: %s requires a value", errUsage, arg)
			}
			i++
			return args[i], nil
		}

		var err error
		switch arg {
		case "-o", "--output":
			opts.output, err = value()
		case "-f", "--format":
			opts.format, err = value()
		case "-c", "--config":
			opts.configFile, err = value()
		case "--render":
			opts.render = true
		case "-v", "--verbose":
			opts.verbose = true
		case "--titles":
			opts.titles = true
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("%w: unknown flag %s", errUsage, arg)
			}
			opts.args = append(opts.args, arg)
		}
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// loadConfig reads the config file if one was given and applies flag overrides.
// A config file named "-" is read from stdin.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	var err error
	switch opts.configFile {
	case "":
	case "-":
		cfg, err = config.LoadFromReader(os.Stdin)
	default:
		cfg, err = config.LoadFromFile(opts.configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.render {
		cfg.Browser.Enabled = true
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.output != "" {
		cfg.Output.File = opts.output
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newClient(opts *options) (*api.Client, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	level, err := utils.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// Logs go to stderr so stdout stays clean
	logger := utils.NewWriterLogger(os.Stderr, level)
	return api.NewClient(cfg, api.WithLogger(logger))
}

// runList parses one or more list URLs and exports the merged entries
func runList(ctx context.Context, opts *options) error {
	if len(opts.args) == 0 {
		return fmt.Errorf("%w: at least one list URL is required", errUsage)
	}
	client, err := newClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	var (
		set      api.EntrySet
		parseErr error
	)
	if len(opts.args) == 1 {
		var result *api.Result
		result, parseErr = client.ParseList(ctx, opts.args[0])
		if result != nil {
			set = result.Entries
			if opts.verbose {
				fmt.Printf("%s: %d pages, stopped on %s\n", result.Type, result.Pages, result.Reason)
			}
		}
	} else {
		set, parseErr = client.ParseLists(ctx, opts.args)
	}

	if parseErr != nil && set.Len() == 0 {
		return parseErr
	}
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "⚠ Parsing stopped early, saving partial results\n")
	}

	target, err := client.Export(set)
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	fmt.Printf("Saved %d entries to %s\n", set.Len(), target)
	return parseErr
}

// runHistory parses a watch-history export and saves events or, with --titles, entries
func runHistory(opts *options) error {
	if len(opts.args) != 1 {
		return fmt.Errorf("%w: exactly one history file is required", errUsage)
	}
	client, err := newClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	events, err := client.ParseHistory(opts.args[0])
	if err != nil {
		return err
	}

	if opts.titles {
		entries := api.ToEntries(events)
		target, err := client.Export(entries)
		if err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		fmt.Printf("Saved %d entries to %s\n", entries.Len(), target)
		return nil
	}

	target, err := api.SaveWatchEvents(events, opts.output)
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	fmt.Printf("Saved %d watch events to %s\n", events.Len(), target)
	return nil
}

// runMerge unions saved entry files; the first title seen for a link wins
func runMerge(opts *options) error {
	if len(opts.args) == 0 {
		return fmt.Errorf("%w: at least one entry file is required", errUsage)
	}
	client, err := newClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	sets := make([]api.EntrySet, 0, len(opts.args))
	for _, path := range opts.args {
		set, err := api.LoadEntries(path)
		if err != nil {
			return err
		}
		sets = append(sets, set)
	}
	merged := api.MergeEntries(sets...)

	target, err := client.Export(merged)
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	fmt.Printf("Merged %d files into %d entries in %s\n", len(sets), merged.Len(), target)
	return nil
}

// printConfig writes the effective configuration, flags applied, as YAML
func printConfig(opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	return config.SaveToWriter(cfg, os.Stdout)
}

// printSources lists the sites a list URL may come from
func printSources() {
	fmt.Println("Supported list sites:")
	for _, lt := range api.Sources() {
		fmt.Printf("  %s\n", strings.ToLower(lt.String()))
	}
	fmt.Println()
	fmt.Println("YouTube watch history is read from exports with the history command.")
}

// run executes a command and returns the process exit code
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	opts, err := parseOptions(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	errorService := weberrors.NewService().WithVerbose(opts.verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "list":
		err = runList(ctx, opts)
	case "history":
		err = runHistory(opts)
	case "merge":
		err = runMerge(opts)
	case "config":
		err = printConfig(opts)
	case "sources":
		printSources()
	case "version", "--version":
		printVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n", command)
		printUsage()
		return 1
	}

	if err == nil {
		return 0
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprint(os.Stderr, errorService.FormatErrorForCLI(err))
	return errorService.GetExitCode(err)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// printUsage displays help information
func printUsage() {
	fmt.Println("weblist - collect titles from list sites and watch history")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  weblist list <url>...              Parse list pages into entries")
	fmt.Println("  weblist history <file>             Parse a YouTube watch-history export (.html or .json)")
	fmt.Println("  weblist merge <file.json>...       Merge saved entry files")
	fmt.Println("  weblist sources                    List supported sites")
	fmt.Println("  weblist config                     Print the effective configuration")
	fmt.Println("  weblist version                    Show version information")
	fmt.Println("  weblist help                       Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -o, --output <file>                Output file (default: timestamped name)")
	fmt.Println("  -f, --format <format>              Output format: " + strings.Join(config.ValidOutputFormats(), ", "))
	fmt.Println("  -c, --config <config.yaml>         Configuration file (- reads stdin)")
	fmt.Println("  --render                           Fetch pages with a headless browser")
	fmt.Println("  --titles                           Save history as title entries")
	fmt.Println("  -v, --verbose                      Enable verbose output")
}

// printVersion displays version information
func printVersion() {
	fmt.Printf("weblist %s\n", version)
	fmt.Printf("Build time: %s\n", buildTime)
	fmt.Printf("Git commit: %s\n", gitCommit)
}
