package svgdoc

import (
	"github.com/beevik/etree"

	"github.com/matzehuels/svgring/pkg/affine"
	errs "github.com/matzehuels/svgring/pkg/errors"
	"github.com/matzehuels/svgring/pkg/transform"
)

const (
	attrID        = "id"
	attrTransform = "transform"
)

// ParentIndex maps every element below a root to its parent.
// It is a snapshot: any structural change to the tree invalidates it.
type ParentIndex map[*etree.Element]*etree.Element

// BuildParentIndex indexes every element reachable from root.
// The root itself has no entry.
func BuildParentIndex(root *etree.Element) ParentIndex {
	idx := make(ParentIndex)
	walk(root, func(el *etree.Element) bool {
		for _, child := range el.ChildElements() {
			idx[child] = el
		}
		return true
	})
	return idx
}

// Parent returns the parent of el, or nil for the root or an unindexed element.
func (idx ParentIndex) Parent(el *etree.Element) *etree.Element {
	return idx[el]
}

// FindByID returns the first element in document order whose id is id,
// or nil when no such element exists.
func FindByID(root *etree.Element, id string) *etree.Element {
	var found *etree.Element
	walk(root, func(el *etree.Element) bool {
		if ID(el) == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// CollectIDs returns every identifier present under root, root included.
func CollectIDs(root *etree.Element) IDSet {
	ids := make(IDSet)
	walk(root, func(el *etree.Element) bool {
		if id := ID(el); id != "" {
			ids.Add(id)
		}
		return true
	})
	return ids
}

// Chain returns the path from the outermost indexed ancestor down to el, inclusive.
func Chain(el *etree.Element, idx ParentIndex) []*etree.Element {
	var chain []*etree.Element
	for cur := el; cur != nil; cur = idx[cur] {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// CumulativeTransform returns the matrix mapping el's local coordinates to
// document-root coordinates: the transforms of root, ..., el composed in
// that order. Transform parse errors keep their code and name the element.
func CumulativeTransform(el *etree.Element, idx ParentIndex) (affine.Matrix, error) {
	m := affine.Identity()
	for _, node := range Chain(el, idx) {
		local, err := transform.Parse(TransformOf(node))
		if err != nil {
			return affine.Matrix{}, errs.Wrap(errs.GetCode(err), err, "transform of %s", Describe(node))
		}
		m = m.Multiply(local)
	}
	return m, nil
}

// Remove detaches the element with the given id from its parent.
// It reports false, without error, when the id is absent or names the root.
// The parent index is rebuilt on every call since earlier removals invalidate it.
func Remove(root *etree.Element, id string) bool {
	el := FindByID(root, id)
	if el == nil {
		return false
	}
	parent := BuildParentIndex(root).Parent(el)
	if parent == nil {
		return false
	}
	parent.RemoveChild(el)
	return true
}

// Clone returns a deep copy of el that shares no nodes with the live tree.
func Clone(el *etree.Element) *etree.Element {
	return el.Copy()
}

// ID returns the element's id attribute, or "" when it has none.
func ID(el *etree.Element) string {
	if a := attr(el, attrID); a != nil {
		return a.Value
	}
	return ""
}

// SetID sets the element's id attribute.
func SetID(el *etree.Element, id string) {
	el.CreateAttr(attrID, id)
}

// TransformOf returns the element's transform attribute, or "" when absent.
func TransformOf(el *etree.Element) string {
	if a := attr(el, attrTransform); a != nil {
		return a.Value
	}
	return ""
}

// SetTransform sets the element's transform attribute.
func SetTransform(el *etree.Element, value string) {
	el.CreateAttr(attrTransform, value)
}

// Describe names an element for messages, e.g. `<g id="g16532">`.
func Describe(el *etree.Element) string {
	if id := ID(el); id != "" {
		return "<" + el.FullTag() + ` id="` + id + `">`
	}
	return "<" + el.FullTag() + ">"
}

// attr finds an unprefixed attribute by exact key.
func attr(el *etree.Element, key string) *etree.Attr {
	for i := range el.Attr {
		if el.Attr[i].Space == "" && el.Attr[i].Key == key {
			return &el.Attr[i]
		}
	}
	return nil
}

// walk visits el and its descendants depth-first in document order.
// Returning false from fn stops the walk.
func walk(el *etree.Element, fn func(*etree.Element) bool) bool {
	if !fn(el) {
		return false
	}
	for _, child := range el.ChildElements() {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

// Walk visits el and its descendants depth-first in document order.
func Walk(el *etree.Element, fn func(*etree.Element)) {
	walk(el, func(e *etree.Element) bool {
		fn(e)
		return true
	})
}
