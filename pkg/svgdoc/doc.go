// Package svgdoc loads, navigates and saves SVG documents.
//
// Documents are held as a mutable element tree (github.com/beevik/etree) that
// keeps namespace declarations and prefixes exactly as read, so an Illustrator
// export round-trips with its default SVG namespace and xlink prefix intact.
//
// # Navigation
//
// Ancestor lookups never rely on live back-pointers. Instead a [ParentIndex]
// is built from the tree on demand and discarded after any structural change:
//
//	idx := svgdoc.BuildParentIndex(doc.Root())
//	toRoot, err := svgdoc.CumulativeTransform(el, idx)
//
// [CumulativeTransform] composes the transform attribute of every element from
// the root down to the target, giving the matrix that maps the target's local
// coordinates to document-root coordinates.
//
// # Mutation
//
// [Remove] is idempotent: removing an id that is already gone is not an error.
// [Clone] produces a detached deep copy that shares no nodes with the document.
package svgdoc
