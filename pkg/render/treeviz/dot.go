package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/render"
	"github.com/matzehuels/svgring/pkg/svgdoc"
)

// Options configures hierarchy diagram generation.
type Options struct {
	// Transforms adds each element's own transform attribute to its label.
	Transforms bool

	// MaxDepth limits how many levels below the root are drawn. Zero means no limit.
	MaxDepth int

	// Highlight lists ids drawn with a filled background, e.g. the ring template.
	Highlight []string
}

// ToDOT converts the subtree rooted at root to Graphviz DOT format.
// Nodes are named n0, n1, ... in document order.
func ToDOT(root *etree.Element, opts Options) string {
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var nodes, edges bytes.Buffer
	next := 0
	var visit func(el *etree.Element, depth int) string
	visit = func(el *etree.Element, depth int) string {
		name := "n" + strconv.Itoa(next)
		next++

		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(el, opts.Transforms))}
		if highlight[svgdoc.ID(el)] {
			attrs = append(attrs, "fillcolor=gold")
		}
		fmt.Fprintf(&nodes, "  %s [%s];\n", name, strings.Join(attrs, ", "))

		children := el.ChildElements()
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			if len(children) > 0 {
				more := name + "_more"
				fmt.Fprintf(&nodes, "  %s [label=%q, style=\"rounded,dashed\"];\n", more, fmt.Sprintf("%d more", len(children)))
				fmt.Fprintf(&edges, "  %s -> %s;\n", name, more)
			}
			return name
		}
		for _, child := range children {
			fmt.Fprintf(&edges, "  %s -> %s;\n", name, visit(child, depth+1))
		}
		return name
	}
	visit(root, 0)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=12];\n")
	buf.WriteString("\n")
	buf.Write(nodes.Bytes())
	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(el *etree.Element, transforms bool) string {
	label := el.FullTag()
	if id := svgdoc.ID(el); id != "" {
		label += "#" + id
	}
	if transforms {
		if tr := svgdoc.TransformOf(el); tr != "" {
			label += "\n" + tr
		}
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// whose viewBox starts at the origin, so the diagram scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="%s" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		svgdoc.NamespaceSVG, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
