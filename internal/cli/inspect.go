package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/svgdoc"
	"github.com/matzehuels/svgring/pkg/transform"
)

// inspectCommand creates the inspect command for checking an element's coordinate frame.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input.svg> <id>",
		Short: "Show an element's transforms and where the ring center lands in its frame",
		Long: `Inspect prints the transform attribute of an element, the matrix it parses
to, the cumulative matrix from the document root, and the configured ring
center mapped into the coordinate space of the element's children. Run it on
the template's parent to preview the rotation center a regeneration would use.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *CLI) runInspect(ctx context.Context, path, id string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	if err := errs.ValidateIdentifier(id); err != nil {
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

	el := svgdoc.FindByID(doc.Root(), id)
	if el == nil {
		return errs.New(errs.ErrCodeElementNotFound, "element %s not found in %s", id, path)
	}
	idx := svgdoc.BuildParentIndex(doc.Root())

	own, err := transform.Parse(svgdoc.TransformOf(el))
	if err != nil {
		return errs.Wrap(errs.GetCode(err), err, "transform of %s", svgdoc.Describe(el))
	}
	cumulative, err := svgdoc.CumulativeTransform(el, idx)
	if err != nil {
		return err
	}

	w := c.Stdout
	printTitle(w, svgdoc.Describe(el))
	if parent := idx.Parent(el); parent != nil {
		printKeyValue(w, "parent", svgdoc.Describe(parent))
	} else {
		printKeyValue(w, "parent", StyleDim.Render("none (document root)"))
	}
	printKeyValue(w, "depth", strconv.Itoa(len(svgdoc.Chain(el, idx))-1))
	if attr := svgdoc.TransformOf(el); attr != "" {
		printKeyValue(w, "transform", attr)
	} else {
		printKeyValue(w, "transform", StyleDim.Render("none"))
	}
	printKeyValue(w, "own", own.String())
	printKeyValue(w, "cumulative", cumulative.String())
	printKeyValue(w, "det", affine.FormatNumber(cumulative.Determinant()))

	inv, err := affine.Invert(cumulative)
	if err != nil {
		printWarning(w, "%s", errs.UserMessage(err))
		return nil
	}
	local := inv.Apply(cfg.Center)
	printKeyValue(w, "center", fmt.Sprintf("%s %s %s", fmtPoint(cfg.Center), iconArrow, fmtPoint(local)))
	printDetail(w, "rotation center for children of %s", svgdoc.Describe(el))
	return nil
}
