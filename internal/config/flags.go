package config

// This file implements CLI flag parsing and help text.
// Every flag is optional: with no flags and no positional argument the tool
// prompts for the folder, previews it, and asks before touching anything.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, more than one positional argument).
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("photoreducer", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineReductionFlags(fs, cfg, &negated)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "photoreducer v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either switch an enum default (recursive, color) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	recursive   bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineReductionFlags registers -r/--recursive, -q/--quality, --min-width, --min-height, -w/--workers.
func defineReductionFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.recursive, "recursive", false, "Walk the whole folder tree instead of one level")
	fs.BoolVar(&n.recursive, "r", false, "Same as --recursive")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "JPEG re-encode quality (1-100)")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
	fs.IntVar(&cfg.MinWidth, "min-width", cfg.MinWidth, "Minimum width kept after halving")
	fs.IntVar(&cfg.MinHeight, "min-height", cfg.MinHeight, "Minimum height kept after halving")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
}

// defineBehaviorFlags registers -d/--dry-run and -y/--yes.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Plan only; do not overwrite any file")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.AssumeYes, "yes", false, "Do not wait for enter before starting or exiting")
	fs.BoolVar(&cfg.AssumeYes, "y", false, "Same as --yes")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log, --report.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.StringVar(&cfg.ReportFile, "report", "", "Write a YAML run report to file")
}

// defineUtilityFlags registers --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run the JPEG/EXIF self-test and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies captured flag values into cfg (e.g. recursive -> Discovery=recursive).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.recursive {
		cfg.Discovery = DiscoveryRecursive
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets RootDir from the optional positional argument.
// With no argument RootDir stays empty and the CLI prompts for it.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.RootDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("expected at most one folder argument, got %d", len(args))
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "photoreducer v" + version + " - in-place JPEG downscaler"},
		{"", ""},
		{"  photoreducer [OPTIONS] [folder]", ""},
		{"", ""},
		{"Reduction", ""},
		{"  -r, --recursive", "Include JPEGs in subfolders"},
		{"  -q, --quality <1-100>", "Re-encode quality (default: 50)"},
		{"  --min-width <px>", "Minimum width (default: 1080)"},
		{"  --min-height <px>", "Minimum height (default: 1080)"},
		{"  -w, --workers <n>", "Parallel workers (default: 5)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Plan only; do not overwrite files"},
		{"  -y, --yes", "Skip the press-enter prompts"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --report <path>", "Write a YAML run report"},
		{"  -c, --check", "Self-test JPEG/EXIF round trip"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
