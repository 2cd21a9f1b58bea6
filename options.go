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

// Default reserved keys. Both fail the element name grammar on purpose: the
// composer skips any child key that is not a valid element name, which is
// what keeps the reserved slots out of the rendered output.
const (
	DefaultTextKey = "#text"
	DefaultAttrKey = "@attrs"
)

// Options configures a single Parse call. A nil *Options or the zero value
// selects every default. The value is read once per call and never retained.
type Options struct {
	// RetainRoot keeps the synthetic top-level wrapper element as the tree
	// instead of replacing it with the document element's value.
	RetainRoot bool

	// PreserveAttrs nests parsed attributes under AttrKey. When off,
	// attributes are merged directly as sibling keys of the element's
	// children; a same-named child element and attribute then collide with
	// last-write-wins precedence, attributes being written first.
	PreserveAttrs bool

	// PreserveWhitespace keeps text content verbatim. When off, text is
	// trimmed and multiple text runs are joined with a single space.
	PreserveWhitespace bool

	// FoldCase lowercases element and attribute names.
	FoldCase bool

	// ForceArrays wraps single, non-repeated children below the document
	// root in one-element Sequences. The child directly under the document
	// root is never wrapped.
	ForceArrays bool

	// TextKey renames the reserved text slot. Default "#text".
	TextKey string

	// AttrKey renames the reserved attribute slot. Default "@attrs".
	AttrKey string
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.TextKey == "" {
		opts.TextKey = DefaultTextKey
	}
	if opts.AttrKey == "" {
		opts.AttrKey = DefaultAttrKey
	}
	return opts
}

// ComposeOptions configures a single composition. A nil *ComposeOptions or
// the zero value selects every default; an explicitly empty Indent or
// Newline is not representable and falls back to the default.
type ComposeOptions struct {
	// Indent is the per-depth indentation unit. Default two spaces.
	Indent string

	// Newline is the line terminator. Default "\n".
	Newline string

	// SortElements orders child element names within an element. Nil keeps
	// insertion order.
	SortElements func(a, b string) bool

	// SortSiblings orders the members of a same-name sibling Sequence.
	// Nil keeps document order.
	SortSiblings func(name string, a, b Node) bool

	// SortAttrs orders attribute keys. Nil keeps document order.
	SortAttrs func(a, b string) bool

	// TextKey and AttrKey locate the reserved slots; they must match the
	// keys the tree was parsed with.
	TextKey string
	AttrKey string
}

func (o *ComposeOptions) withDefaults() ComposeOptions {
	var opts ComposeOptions
	if o != nil {
		opts = *o
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	if opts.Newline == "" {
		opts.Newline = "\n"
	}
	if opts.TextKey == "" {
		opts.TextKey = DefaultTextKey
	}
	if opts.AttrKey == "" {
		opts.AttrKey = DefaultAttrKey
	}
	return opts
}

// SortLexical is a ready-made comparator for the SortElements and SortAttrs
// hooks.
func SortLexical(a, b string) bool {
	return a < b
}
