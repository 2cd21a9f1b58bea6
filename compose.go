// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xmlsorter

import (
	"sort"
	"strings"
)

// Compose renders a node back to XML text under the given tag name.
// Composition never fails: a malformed or partially populated tree produces
// best-effort text. The input tree is not mutated and no state survives the
// call.
//
// Text slots and attribute values are entity-escaped on the way out;
// already-collapsed Scalar values are emitted verbatim.
func Compose(n Node, name string, opts *ComposeOptions) string {
	o := opts.withDefaults()
	var b strings.Builder
	composeNode(&b, n, name, 0, &o)
	return b.String()
}

// Compose renders the document, replaying every captured processing
// instruction and DTD declaration verbatim, in discovery order, before the
// tree itself.
func (d *Document) Compose(opts *ComposeOptions) string {
	o := opts.withDefaults()
	var b strings.Builder
	for _, decl := range d.Prolog {
		b.WriteString(decl)
		b.WriteString(o.Newline)
	}
	n := d.Root
	if d.Wrapper {
		if e, ok := n.(*Element); ok {
			n, _ = e.Get(d.Name)
		}
	}
	composeNode(&b, n, d.Name, 0, &o)
	return b.String()
}

func composeNode(b *strings.Builder, n Node, name string, depth int, o *ComposeOptions) {
	switch n := n.(type) {
	case Scalar:
		pad := strings.Repeat(o.Indent, depth)
		b.WriteString(pad)
		b.WriteByte('<')
		b.WriteString(name)
		b.WriteByte('>')
		b.WriteString(string(n))
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
		b.WriteString(o.Newline)
	case Sequence:
		members := n
		if o.SortSiblings != nil {
			members = append(Sequence(nil), n...)
			sort.SliceStable(members, func(i, j int) bool {
				return o.SortSiblings(name, members[i], members[j])
			})
		}
		// Members are siblings: same name, same depth.
		for _, m := range members {
			composeNode(b, m, name, depth, o)
		}
	case *Element:
		composeElement(b, n, name, depth, o)
	}
}

func composeElement(b *strings.Builder, e *Element, name string, depth int, o *ComposeOptions) {
	pad := strings.Repeat(o.Indent, depth)
	b.WriteString(pad)
	b.WriteByte('<')
	b.WriteString(name)

	if n, ok := e.Get(o.AttrKey); ok {
		if attrs, ok := n.(*Element); ok {
			keys := attrs.Keys()
			if o.SortAttrs != nil {
				sort.SliceStable(keys, func(i, j int) bool { return o.SortAttrs(keys[i], keys[j]) })
			}
			for _, k := range keys {
				v, _ := attrs.Get(k)
				s, _ := v.(Scalar)
				b.WriteByte(' ')
				b.WriteString(k)
				b.WriteString(`="`)
				b.WriteString(EncodeAttrEntities(string(s)))
				b.WriteByte('"')
			}
		}
	}

	// Reserved slots and any key failing the name grammar are never emitted
	// as children.
	var children []string
	for _, k := range e.Keys() {
		if k != o.AttrKey && k != o.TextKey && validName(k) {
			children = append(children, k)
		}
	}

	switch {
	case len(children) > 0:
		if o.SortElements != nil {
			sort.SliceStable(children, func(i, j int) bool { return o.SortElements(children[i], children[j]) })
		}
		b.WriteByte('>')
		b.WriteString(o.Newline)
		for _, k := range children {
			c, _ := e.Get(k)
			composeNode(b, c, k, depth+1, o)
		}
		b.WriteString(pad)
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
		b.WriteString(o.Newline)
	case hasText(e, o.TextKey):
		t, _ := e.Get(o.TextKey)
		s, _ := t.(Scalar)
		b.WriteByte('>')
		b.WriteString(EncodeEntities(string(s)))
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
		b.WriteString(o.Newline)
	default:
		b.WriteString("/>")
		b.WriteString(o.Newline)
	}
}

func hasText(e *Element, textKey string) bool {
	_, ok := e.Get(textKey)
	return ok
}
