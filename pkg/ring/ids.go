package ring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/svgring/pkg/svgdoc"
)

// Mint returns candidate if it is not in ids, otherwise the first of
// candidate_2, candidate_3, ... that is not. The result is added to ids
// before returning, so later calls cannot hand it out again.
func Mint(ids svgdoc.IDSet, candidate string) string {
	id := candidate
	for n := 2; ids.Has(id); n++ {
		id = fmt.Sprintf("%s_%d", candidate, n)
	}
	ids.Add(id)
	return id
}

// CopyID is the preferred id of copy i of the element with the given id.
func CopyID(base string, i int) string {
	return fmt.Sprintf("%s_new%02d", base, i)
}

// WrapperID is the preferred id of the group wrapping the copy with the given id.
func WrapperID(copyID string) string {
	return copyID + "_wrap"
}

// urlRefRe matches url(#id) references, with optional quotes.
var urlRefRe = regexp.MustCompile(`url\(\s*(['"]?)#([^'")\s]+)(['"]?)\s*\)`)

// reidentify sets the copy's id to copyID, gives every identified descendant
// a fresh id for copy index i, then points references inside the copy at the
// new ids. It returns the old-to-new id mapping.
func reidentify(cp *etree.Element, copyID string, i int, ids svgdoc.IDSet) map[string]string {
	renamed := make(map[string]string)
	if old := svgdoc.ID(cp); old != "" {
		renamed[old] = copyID
	}
	svgdoc.SetID(cp, copyID)

	for _, child := range cp.ChildElements() {
		svgdoc.Walk(child, func(el *etree.Element) {
			old := svgdoc.ID(el)
			if old == "" {
				return
			}
			id := Mint(ids, CopyID(old, i))
			svgdoc.SetID(el, id)
			renamed[old] = id
		})
	}

	svgdoc.Walk(cp, func(el *etree.Element) {
		for j := range el.Attr {
			el.Attr[j].Value = rewriteRefs(el.Attr[j], renamed)
		}
	})
	return renamed
}

func rewriteRefs(a etree.Attr, renamed map[string]string) string {
	if a.Key == "href" && strings.HasPrefix(a.Value, "#") {
		if id, ok := renamed[a.Value[1:]]; ok {
			return "#" + id
		}
		return a.Value
	}
	if !strings.Contains(a.Value, "url(") {
		return a.Value
	}
	return urlRefRe.ReplaceAllStringFunc(a.Value, func(m string) string {
		sub := urlRefRe.FindStringSubmatch(m)
		id, ok := renamed[sub[2]]
		if !ok {
			return m
		}
		return "url(" + sub[1] + "#" + id + sub[3] + ")"
	})
}
