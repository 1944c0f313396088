// Package pkg provides the libraries behind svgring.
//
// # Overview
//
// svgring rebuilds a radial ring of decorative elements in an SVG document.
// The packages layer as follows, leaves first:
//
//  1. [errors] - Coded errors, exit status mapping, input validation
//  2. [affine] - 2D affine matrices in SVG parameter order
//  3. [transform] - Parsing of transform attributes into matrices
//  4. [svgdoc] - Document I/O, parent index, id lookup, cumulative transforms
//  5. [ring] - Configuration and the regeneration pipeline
//  6. [render] - Rasterization and element hierarchy diagrams
//
// # Architecture
//
// The data flow of a regeneration:
//
//	input.svg
//	    ↓
//	[svgdoc] Load (etree DOM)
//	    ↓
//	[ring] locate → center → delete → stamp
//	    ↓        ([transform] + [affine] map the center into the parent's frame)
//	[svgdoc] Save (atomic rename)
//	    ↓
//	output.svg
//
// # Quick Start
//
//	doc, err := svgdoc.Load("stars.svg")
//	if err != nil {
//	    return err
//	}
//	res, err := ring.New(ring.DefaultConfig(), logger).Run(ctx, doc)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("local center:", res.LocalCenter)
//	return doc.Save("stars-27.svg")
//
// # Observability
//
// [observability] exposes hooks for phase timing, deletions, stamps and
// document I/O. The defaults are no-ops; the CLI installs logging hooks.
package pkg
