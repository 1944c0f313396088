// Package ring regenerates a radial arrangement of copies in an SVG document.
//
// A run removes the stale ring elements and the template itself, then appends
// Count copies of the template to the template's former parent. Each copy sits
// in its own <g> wrapper carrying rotate(angle cx cy), where (cx, cy) is the
// configured center mapped into the parent's local coordinate space and angle
// is Direction * 360/Count * i.
//
// Every id in the output is unique. Copies are named <template>_newNN and
// wrappers <copy>_wrap; ids inside a copy are re-minted the same way and
// references to them within the copy (href="#id", url(#id)) follow. Any
// candidate already in use gets a numeric suffix (_2, _3, ...).
//
// The regenerator only mutates an in-memory [svgdoc.Document]; loading and
// saving are left to the caller.
package ring
