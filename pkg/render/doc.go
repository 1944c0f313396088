// Package render converts SVG output to raster and print formats.
//
// The [ToPDF] and [ToPNG] functions shell out to rsvg-convert (from librsvg).
// They serve both the regenerated ring document, for a quick visual check of
// the winding order, and the hierarchy diagrams produced by [treeviz].
//
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//	pdf, err := render.ToPDF(svg)
package render
