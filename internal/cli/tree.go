package cli

import (
	"context"
	"os"
	"slices"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/render/treeviz"
	"github.com/matzehuels/svgring/pkg/svgdoc"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

var treeFormats = []string{formatDOT, formatSVG, formatPNG, formatPDF}

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	root       string // id of the subtree to draw; empty means the document root
	format     string // one of treeFormats
	output     string // output file; empty means stdout
	transforms bool   // include transform attributes in labels
	depth      int    // maximum depth below root; 0 is unlimited
}

// treeCommand creates the tree command for drawing the element hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: formatDOT, transforms: true}

	cmd := &cobra.Command{
		Use:   "tree <input.svg>",
		Short: "Draw the element hierarchy as a Graphviz diagram",
		Long: `Tree exports the element hierarchy of a document as Graphviz DOT, or renders
it to SVG, PNG or PDF. The configured template is highlighted.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "draw only the subtree under this id")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.transforms, "transforms", opts.transforms, "show transform attributes in labels")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "maximum depth below the root (0 = unlimited)")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, path string, opts treeOpts) error {
	if !slices.Contains(treeFormats, opts.format) {
		return errs.New(errs.ErrCodeUsage, "unknown format %q (want one of %v)", opts.format, treeFormats)
	}
	if (opts.format == formatPNG || opts.format == formatPDF) && opts.output == "" {
		return errs.New(errs.ErrCodeUsage, "%s output requires -o", opts.format)
	}
	if opts.depth < 0 {
		return errs.New(errs.ErrCodeUsage, "depth must not be negative, got %d", opts.depth)
	}
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}

	root := doc.Root()
	if opts.root != "" {
		if root = svgdoc.FindByID(root, opts.root); root == nil {
			return errs.New(errs.ErrCodeElementNotFound, "element %s not found in %s", opts.root, path)
		}
	}

	dot := treeviz.ToDOT(root, treeviz.Options{
		Transforms: opts.transforms,
		MaxDepth:   opts.depth,
		Highlight:  []string{cfg.TemplateID},
	})

	data := []byte(dot)
	if opts.format != formatDOT {
		data, err = spin(ctx, c.Stderr, "Rendering "+opts.format, func() ([]byte, error) {
			switch opts.format {
			case formatPNG:
				return treeviz.RenderPNG(ctx, dot, 2.0)
			case formatPDF:
				return treeviz.RenderPDF(ctx, dot)
			}
			return treeviz.RenderSVG(ctx, dot)
		})
		if err != nil {
			return err
		}
	}

	if opts.output == "" {
		if _, err := c.Stdout.Write(data); err != nil {
			return errs.Wrap(errs.ErrCodeIO, err, "write %s tree to stdout", opts.format)
		}
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "write %s", opts.output)
	}
	printSuccess(c.Stdout, "Wrote %s tree", opts.format)
	printFile(c.Stdout, opts.output)
	loggerFromContext(ctx).Debug("tree written", "path", opts.output, "bytes", len(data))
	return nil
}
