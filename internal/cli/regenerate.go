package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beevik/etree"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/observability"
	"github.com/matzehuels/svgring/pkg/render"
	"github.com/matzehuels/svgring/pkg/ring"
	"github.com/matzehuels/svgring/pkg/svgdoc"
)

// regenerateOpts holds the root command's own flags.
type regenerateOpts struct {
	dryRun       bool    // run everything except the final write
	preview      string  // optional PNG path rendered from the output
	previewScale float64 // rasterization factor for preview
}

// runRegenerate loads in, rebuilds the ring and writes out.
// Nothing is written unless every phase succeeds.
func (c *CLI) runRegenerate(ctx context.Context, in, out string, opts regenerateOpts) error {
	logger := loggerFromContext(ctx)

	for _, p := range []string{in, out} {
		if err := errs.ValidatePath(p); err != nil {
			return err
		}
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("ring config", "template", cfg.TemplateID, "delete", len(cfg.DeleteIDs),
		"center", cfg.Center, "count", cfg.Count, "direction", cfg.Direction)

	doc, err := loadDocument(ctx, in)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := ring.New(cfg, logger).Run(ctx, doc)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Regenerated %d copies of %s", res.Created(), cfg.TemplateID))

	if err := ctx.Err(); err != nil {
		return err
	}

	if opts.dryRun {
		printRingSummary(c.Stdout, cfg, res)
		printInfo(c.Stdout, "Dry run, %s not written", out)
		return nil
	}

	if err := saveDocument(ctx, doc, out); err != nil {
		return err
	}

	printRingSummary(c.Stdout, cfg, res)
	printSuccess(c.Stdout, "Wrote %s", out)
	printFile(c.Stdout, out)

	if opts.preview != "" {
		c.writePreview(ctx, doc, opts)
	}
	printReversalHint(c.Stdout, cfg.Direction)
	return nil
}

// writePreview rasterizes the regenerated document. The output SVG is
// already in place, so failures are reported but do not fail the run.
func (c *CLI) writePreview(ctx context.Context, doc *svgdoc.Document, opts regenerateOpts) {
	data, err := spin(ctx, c.Stderr, "Rendering preview", func() ([]byte, error) {
		svg, err := doc.Bytes()
		if err != nil {
			return nil, err
		}
		return render.ToPNG(svg, opts.previewScale)
	})
	if err == nil {
		err = os.WriteFile(opts.preview, data, 0o644)
	}
	if err != nil {
		printWarning(c.Stdout, "preview not written: %s", errs.UserMessage(err))
		return
	}
	printFile(c.Stdout, opts.preview)
}

// loadDocument reads path and reports the load to the document hooks.
func loadDocument(ctx context.Context, path string) (*svgdoc.Document, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	start := time.Now()

	doc, err := svgdoc.Load(path)
	elements := 0
	if err == nil {
		svgdoc.Walk(doc.Root(), func(*etree.Element) { elements++ })
	}
	observability.Document().OnLoad(ctx, path, elements, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %s, %d elements", path, elements))
	return doc, nil
}

// saveDocument writes doc to path and reports the save to the document hooks.
func saveDocument(ctx context.Context, doc *svgdoc.Document, path string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	start := time.Now()

	err := doc.Save(path)
	size := 0
	if err == nil {
		if fi, statErr := os.Stat(path); statErr == nil {
			size = int(fi.Size())
		}
	}
	observability.Document().OnSave(ctx, path, size, time.Since(start), err)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Saved %s, %d bytes", path, size))
	return nil
}

func printRingSummary(w io.Writer, cfg ring.Config, res *ring.Result) {
	printKeyValue(w, "parent", res.Parent)
	printKeyValue(w, "center", fmtPoint(res.LocalCenter)+StyleDim.Render(" (parent-local)"))
	printKeyValue(w, "deleted", StyleNumber.Render(fmt.Sprint(len(res.Deleted)))+" old elements")
	if len(res.Skipped) > 0 {
		printDetail(w, "already absent: %v", res.Skipped)
	}
	printKeyValue(w, "created", fmt.Sprintf("%s copies, step %s°",
		StyleNumber.Render(fmt.Sprint(res.Created())), affine.FormatNumber(float64(cfg.Direction)*cfg.Step())))
}

// printReversalHint reminds the operator that winding order is a config choice.
func printReversalHint(w io.Writer, direction int) {
	printWarning(w, "If the order is reversed, set direction = %d in the config.", -direction)
}

// fmtPoint renders p with six decimals.
func fmtPoint(p affine.Point) string {
	return fmt.Sprintf("(%.6f, %.6f)", p.X, p.Y)
}
