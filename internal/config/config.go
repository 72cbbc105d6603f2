// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. With no flags the tool runs interactively with the defaults
// below.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// --- Enum types for validated string fields ---

// DiscoveryMode selects how candidate files are collected from the root folder.
type DiscoveryMode string

const (
	DiscoveryShallow   DiscoveryMode = "shallow"   // One-level listing (default).
	DiscoveryRecursive DiscoveryMode = "recursive" // Full tree walk.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] and the interactive folder prompt. Once the
// batch starts it is treated as read-only; workers only ever see the
// immutable option values derived from it.
type Config struct {
	// Paths.
	RootDir   string        // Folder to reduce (positional arg or prompt).
	Discovery DiscoveryMode // Default: "shallow".

	// Reduction settings.
	Quality         int `validate:"min=1,max=100"`   // Default: 50.
	ReductionFactor int `validate:"min=2,max=16"`    // Default: 2 (halving).
	MinWidth        int `validate:"min=1,max=65535"` // Default: 1080.
	MinHeight       int `validate:"min=1,max=65535"` // Default: 1080.

	// Dispatch.
	Workers int `validate:"min=1,max=256"` // Default: 5.

	// Behavior flags.
	DryRun    bool // Plan only; never write.
	AssumeYes bool // Skip the "press enter" gates.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ReportFile string    // Optional YAML run report path.
	CheckOnly  bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the built-in reduction constants:
// quality 50, halving, 1080x1080 minimum, five workers, shallow listing.
func DefaultConfig() Config {
	return Config{
		Discovery:       DiscoveryShallow,
		Quality:         50,
		ReductionFactor: 2,
		MinWidth:        1080,
		MinHeight:       1080,
		Workers:         5,
		DryRun:          false,
		AssumeYes:       false,
		Verbose:         false,
		ColorMode:       ColorAuto,
		CheckOnly:       false,
	}
}

// NormalizeDirArg converts Windows separators to forward slashes, trims
// surrounding whitespace and strips trailing slashes. The filesystem root "/"
// is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	path = strings.ReplaceAll(strings.TrimSpace(path), "\\", "/")
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

var validate = validator.New()

// Validate checks enum fields and numeric bounds. The root folder is not
// required here because it may still be collected by the interactive prompt.
func (c *Config) Validate() error {
	switch c.Discovery {
	case DiscoveryShallow, DiscoveryRecursive:
		// valid
	default:
		return errors.New("invalid discovery mode (use 'shallow' or 'recursive')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s %v (must satisfy %s=%s)", fieldLabel(fe.Field()), fe.Value(), fe.Tag(), fe.Param())
		}
		return err
	}
	return nil
}

// fieldLabel maps struct field names to the flag names users know.
func fieldLabel(field string) string {
	switch field {
	case "Quality":
		return "quality"
	case "ReductionFactor":
		return "reduction factor"
	case "MinWidth":
		return "min-width"
	case "MinHeight":
		return "min-height"
	case "Workers":
		return "workers"
	default:
		return strings.ToLower(field)
	}
}
