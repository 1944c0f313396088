// Package cli implements the svgring command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgring/pkg/buildinfo"
	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/ring"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "svgring"

	// defaultPreviewScale is the rasterization factor for --preview.
	defaultPreviewScale = 1.0
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives the operator-facing summary. Logs go to the logger's writer.
	Stdout io.Writer

	// Stderr receives progress spinners.
	Stderr io.Writer

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself performs the regeneration.
func (c *CLI) RootCommand() *cobra.Command {
	opts := regenerateOpts{previewScale: defaultPreviewScale}

	root := &cobra.Command{
		Use:   appName + " [flags] <input.svg> <output.svg>",
		Short: "svgring regenerates a ring of rotated copies in an SVG document",
		Long: `svgring removes the stale elements of a radial ring in an SVG document and
stamps evenly rotated copies of a template element around a shared center.

The center is given in document coordinates and mapped into the template
parent's local frame, so the ring lands correctly under any nesting of
translate, rotate, scale and matrix transforms.`,
		Example: `  svgring stars.svg stars-27.svg
  svgring -c ring.toml --preview ring.png stars.svg stars-27.svg`,
		Version:       buildinfo.Version,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRegenerate(cmd.Context(), args[0], args[1], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errs.Wrap(errs.ErrCodeUsage, err, "usage: %s", cmd.UseLine())
	})

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML file overriding the built-in ring configuration")
	root.Flags().BoolVar(&opts.dryRun, "dry-run", false, "run the regeneration but do not write the output")
	root.Flags().StringVar(&opts.preview, "preview", "", "also rasterize the output to this PNG file (requires rsvg-convert)")
	root.Flags().Float64Var(&opts.previewScale, "preview-scale", defaultPreviewScale, "scale factor for --preview")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// exactArgs is cobra.ExactArgs with a usage-coded error.
func exactArgs(n int) cobra.PositionalArgs {
	return usageArgs(cobra.ExactArgs(n))
}

// usageArgs codes the validator's errors as usage errors, so main exits with the usage status.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errs.Wrap(errs.ErrCodeUsage, err, "usage: %s", cmd.UseLine())
		}
		return nil
	}
}

// loadConfig returns the ring configuration from --config, or the defaults.
func (c *CLI) loadConfig() (ring.Config, error) {
	if c.configPath == "" {
		return ring.DefaultConfig(), nil
	}
	if err := errs.ValidatePath(c.configPath); err != nil {
		return ring.Config{}, err
	}
	return ring.LoadConfig(c.configPath)
}
