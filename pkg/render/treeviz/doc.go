// Package treeviz draws the element hierarchy of an SVG document as a
// Graphviz diagram.
//
// Each element becomes a box labeled with its tag and id; with
// [Options].Transforms set, the label also carries the element's own
// transform attribute. This makes it easy to see which groups sit between a
// ring template and the document root and what each contributes to the
// cumulative coordinate mapping.
//
//	dot := treeviz.ToDOT(doc.Root(), treeviz.Options{Transforms: true})
//	svg, err := treeviz.RenderSVG(ctx, dot)
package treeviz
