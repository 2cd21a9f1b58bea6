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
	"regexp"
	"strings"

	"github.com/google/triemap"
)

var (
	// Element and attribute names: a leading word character, then word,
	// hyphen, colon, or dot characters.
	namePattern = regexp.MustCompile(`^\w[\w:.\-]*$`)

	// Repeated name = "value" or name = 'value' pairs; a value cannot
	// contain its own delimiting quote.
	attrPattern = regexp.MustCompile(`(\w[\w:.\-]*)\s*=\s*("[^"]*"|'[^']*')`)

	procInstPattern    = regexp.MustCompile(`(?s)^\?\w[\w:.\-]*(\s.*)?\?$`)
	externalDTDPattern = regexp.MustCompile(`(?s)^!DOCTYPE\s+\w[\w:.\-]*\s+(SYSTEM\s+("[^"]*"|'[^']*')|PUBLIC\s+("[^"]*"|'[^']*')\s+("[^"]*"|'[^']*'))\s*$`)
	inlineDTDPattern   = regexp.MustCompile(`(?s)^!DOCTYPE\s+\w[\w:.\-]*\s+\[.*\]\s*$`)
)

func validName(s string) bool {
	return namePattern.MatchString(s)
}

// scanner walks the source text with an explicit cursor. It is shared
// between the main build loop and the special-construct parsers, which keep
// consuming chunks directly so control returns to the loop with the cursor
// already past the full construct. The scanner itself never fails; running
// out of tags simply ends the sequence.
type scanner struct {
	src string
	pos int
}

// next returns the text preceding the next tag and that tag's raw bracket
// interior, advancing the cursor past the closing bracket. ok is false when
// no further complete tag exists.
func (s *scanner) next() (text, tag string, ok bool) {
	lt := strings.IndexByte(s.src[s.pos:], '<')
	if lt < 0 {
		s.pos = len(s.src)
		return "", "", false
	}
	text = s.src[s.pos : s.pos+lt]
	start := s.pos + lt + 1
	gt := strings.IndexByte(s.src[start:], '>')
	if gt < 0 {
		s.pos = len(s.src)
		return text, "", false
	}
	s.pos = start + gt + 1
	return text, s.src[start : start+gt], true
}

// chunk returns the source up to the next closing bracket, consuming it.
// Comment, inline DTD, and CDATA content may legally contain '>' so their
// parsers keep requesting chunks until they see their own terminator.
func (s *scanner) chunk() (string, bool) {
	gt := strings.IndexByte(s.src[s.pos:], '>')
	if gt < 0 {
		s.pos = len(s.src)
		return "", false
	}
	c := s.src[s.pos : s.pos+gt]
	s.pos = gt + s.pos + 1
	return c, true
}

// line computes the 1-based line a tag starts on: line breaks consumed so
// far, minus the breaks inside the tag itself (the cursor already sits past
// it).
func (s *scanner) line(tag string) int {
	return 1 + strings.Count(s.src[:s.pos], "\n") - strings.Count(tag, "\n")
}

type tagKind int

const (
	openTag tagKind = iota
	selfCloseTag
	closingTag
	procInstTag
	commentTag
	doctypeTag
	cdataTag
)

// parsedTag is a classified tag. name and attrs are set for standard tags,
// text for CDATA sections.
type parsedTag struct {
	kind  tagKind
	name  string
	attrs string
	text  string
}

type parser struct {
	scan   scanner
	opts   Options
	prolog []string
	names  triemap.RuneSliceMap
}

func (p *parser) errorAt(kind Kind, tag string) *ParseError {
	return &ParseError{Kind: kind, Tag: tag, Line: p.scan.line(tag)}
}

// intern caches one folded copy per distinct element or attribute name.
// Large documents repeat a handful of names thousands of times.
func (p *parser) intern(name string) string {
	runes := []rune(name)
	if v, ok := p.names.Get(runes); ok {
		return v.(string)
	}
	folded := name
	if p.opts.FoldCase {
		folded = strings.ToLower(name)
	}
	p.names.Put(runes, folded)
	return folded
}

// classify determines a raw tag's kind by its leading marker and runs the
// per-construct parser.
func (p *parser) classify(raw string) (parsedTag, *ParseError) {
	switch {
	case strings.HasPrefix(raw, "?"):
		return p.procInst(raw)
	case strings.HasPrefix(raw, "!--"):
		return p.comment(raw)
	case strings.HasPrefix(raw, "!DOCTYPE"):
		return p.doctype(raw)
	case strings.HasPrefix(raw, "!["):
		return p.cdata(raw)
	case strings.HasPrefix(raw, "!"):
		return parsedTag{}, p.errorAt(MalformedSpecialTag, raw)
	}
	return p.standard(raw)
}

// procInst validates a <? ... ?> declaration and captures it verbatim for
// prolog replay.
func (p *parser) procInst(raw string) (parsedTag, *ParseError) {
	if !procInstPattern.MatchString(raw) {
		return parsedTag{}, p.errorAt(MalformedProcessingInstruction, raw)
	}
	p.prolog = append(p.prolog, "<"+raw+">")
	return parsedTag{kind: procInstTag}, nil
}

// comment consumes a <!-- --> construct, pulling further chunks while the
// content after the opener lacks the '--' terminator; the opener's own
// hyphens never double as the terminator. Content is discarded.
func (p *parser) comment(raw string) (parsedTag, *ParseError) {
	full := raw
	for !strings.HasSuffix(full[len("!--"):], "--") {
		c, ok := p.scan.chunk()
		if !ok {
			return parsedTag{}, p.errorAt(UnclosedComment, full)
		}
		full += ">" + c
	}
	return parsedTag{kind: commentTag}, nil
}

// doctype consumes a <!DOCTYPE > declaration. The inline bracketed form may
// contain '>' and keeps pulling chunks until its brackets balance; the
// external form is SYSTEM or PUBLIC with quoted literals. Either form is
// captured verbatim for prolog replay.
func (p *parser) doctype(raw string) (parsedTag, *ParseError) {
	full := raw
	if strings.Contains(raw, "[") {
		for strings.Count(full, "[") > strings.Count(full, "]") {
			c, ok := p.scan.chunk()
			if !ok {
				return parsedTag{}, p.errorAt(UnclosedDTD, full)
			}
			full += ">" + c
		}
		if !inlineDTDPattern.MatchString(full) {
			return parsedTag{}, p.errorAt(MalformedDTD, full)
		}
	} else if !externalDTDPattern.MatchString(full) {
		return parsedTag{}, p.errorAt(MalformedDTD, full)
	}
	p.prolog = append(p.prolog, "<"+full+">")
	return parsedTag{kind: doctypeTag}, nil
}

// cdata consumes a <![CDATA[ ]]> section, pulling further chunks while the
// content lacks the ']]' terminator. The content is returned exactly as
// written, embedded '>' included.
func (p *parser) cdata(raw string) (parsedTag, *ParseError) {
	if !strings.HasPrefix(raw, "![CDATA[") {
		return parsedTag{}, p.errorAt(MalformedCDATA, raw)
	}
	body := raw[len("![CDATA["):]
	for !strings.HasSuffix(body, "]]") {
		c, ok := p.scan.chunk()
		if !ok {
			return parsedTag{}, p.errorAt(UnclosedCDATA, "![CDATA["+body)
		}
		body += ">" + c
	}
	return parsedTag{kind: cdataTag, text: body[:len(body)-2]}, nil
}

// standard splits a plain tag into closing (/name) or opening
// (name attrs, optionally trailing / for self-close).
func (p *parser) standard(raw string) (parsedTag, *ParseError) {
	if strings.HasPrefix(raw, "/") {
		name := strings.TrimSpace(raw[1:])
		if !validName(name) {
			return parsedTag{}, p.errorAt(MalformedTag, raw)
		}
		return parsedTag{kind: closingTag, name: p.intern(name)}, nil
	}
	kind := openTag
	body := raw
	if strings.HasSuffix(body, "/") {
		kind = selfCloseTag
		body = body[:len(body)-1]
	}
	name, attrs := body, ""
	if i := strings.IndexAny(body, " \t\r\n"); i >= 0 {
		name, attrs = body[:i], body[i+1:]
	}
	if !validName(name) {
		return parsedTag{}, p.errorAt(MalformedTag, raw)
	}
	return parsedTag{kind: kind, name: p.intern(name), attrs: attrs}, nil
}

// attributes scans a tag's attribute region for quoted name/value pairs,
// decoding entities in each value immediately. Anything that is not a pair
// is skipped; attribute problems have no error kind.
func (p *parser) attributes(region string) [][2]string {
	var pairs [][2]string
	for _, m := range attrPattern.FindAllStringSubmatch(region, -1) {
		quoted := m[2]
		pairs = append(pairs, [2]string{p.intern(m[1]), DecodeEntities(quoted[1 : len(quoted)-1])})
	}
	return pairs
}

// setAttributes writes parsed attributes into elem: nested under the
// reserved attribute key when preservation is on (the key is absent for an
// attribute-less tag), merged as sibling child keys otherwise. In merged
// mode the returned set names the attribute-origin keys, so a later
// same-named child element overwrites them instead of forming a Sequence.
func (p *parser) setAttributes(elem *Element, region string) map[string]bool {
	pairs := p.attributes(region)
	if len(pairs) == 0 {
		return nil
	}
	if p.opts.PreserveAttrs {
		attrs := &Element{}
		for _, a := range pairs {
			attrs.Set(a[0], Scalar(a[1]))
		}
		elem.Set(p.opts.AttrKey, attrs)
		return nil
	}
	merged := make(map[string]bool, len(pairs))
	for _, a := range pairs {
		elem.Set(a[0], Scalar(a[1]))
		merged[a[0]] = true
	}
	return merged
}

// appendText accumulates text into elem's reserved text slot. Parsed
// character data is entity-decoded and, unless whitespace preservation is
// on, trimmed and joined to earlier runs with a single space. CDATA content
// arrives with literal set and is kept byte for byte.
func (p *parser) appendText(elem *Element, text string, literal bool) {
	if !literal {
		text = DecodeEntities(text)
		if !p.opts.PreserveWhitespace {
			text = strings.TrimSpace(text)
		}
	}
	if text == "" {
		return
	}
	if prev, ok := elem.Get(p.opts.TextKey); ok {
		if s, ok := prev.(Scalar); ok {
			sep := " "
			if p.opts.PreserveWhitespace {
				sep = ""
			}
			elem.Set(p.opts.TextKey, Scalar(string(s)+sep+text))
			return
		}
	}
	elem.Set(p.opts.TextKey, Scalar(text))
}

// collapse reduces a finished element to a bare Scalar when the text slot is
// its only content. An element with nothing at all collapses to "".
func collapse(elem *Element, textKey string) Node {
	keys := elem.Keys()
	switch {
	case len(keys) == 0:
		return Scalar("")
	case len(keys) == 1 && keys[0] == textKey:
		n, _ := elem.Get(textKey)
		return n
	}
	return elem
}

// attach hangs a finished child under its tag name. A duplicate name
// promotes to or extends a Sequence, except that a merged attribute is
// overwritten rather than promoted (last write wins); array-forcing wraps
// first children in one-element Sequences everywhere except directly under
// the document root.
func (p *parser) attach(parent *Element, name string, child Node, atRoot bool, mergedAttrs map[string]bool) {
	if prev, ok := parent.Get(name); ok && !mergedAttrs[name] {
		if seq, ok := prev.(Sequence); ok {
			parent.Set(name, append(seq, child))
		} else {
			parent.Set(name, Sequence{prev, child})
		}
		return
	}
	delete(mergedAttrs, name)
	if p.opts.ForceArrays && !atRoot {
		parent.Set(name, Sequence{child})
		return
	}
	parent.Set(name, child)
}

// build is one recursion level of the descent: it consumes scanned units
// into elem until the closing tag matching name. The root call passes an
// empty name and ends at end of input instead.
func (p *parser) build(elem *Element, name string, mergedAttrs map[string]bool) *ParseError {
	for {
		text, raw, ok := p.scan.next()
		p.appendText(elem, text, false)
		if !ok {
			if name != "" {
				return p.errorAt(MissingClosingTag, "/"+name)
			}
			return nil
		}
		t, err := p.classify(raw)
		if err != nil {
			return err
		}
		switch t.kind {
		case procInstTag, commentTag, doctypeTag:
			// Declarations were captured by classify; comments vanish.
		case cdataTag:
			p.appendText(elem, t.text, true)
		case closingTag:
			if t.name != name {
				return p.errorAt(MismatchedClosingTag, raw)
			}
			return nil
		case openTag, selfCloseTag:
			child := &Element{}
			childAttrs := p.setAttributes(child, t.attrs)
			if t.kind == openTag {
				if err := p.build(child, t.name, childAttrs); err != nil {
					return err
				}
			}
			p.attach(elem, t.name, collapse(child, p.opts.TextKey), name == "", mergedAttrs)
		}
	}
}

// Parse converts XML text into a Document. The first structural problem
// aborts the whole parse and is returned as a *ParseError; no partial tree
// is ever returned. A nil opts selects every default.
func Parse(src string, opts *Options) (*Document, error) {
	p := &parser{scan: scanner{src: src}, opts: opts.withDefaults()}
	root := &Element{}
	if err := p.build(root, "", nil); err != nil {
		return nil, err
	}
	// Leftover root-level text has no element to belong to.
	root.Delete(p.opts.TextKey)
	doc := &Document{Prolog: p.prolog}
	keys := root.Keys()
	if len(keys) > 1 {
		return nil, p.errorAt(TooManyTopLevelNodes, keys[1])
	}
	if len(keys) == 1 {
		doc.Name = keys[0]
		if p.opts.RetainRoot {
			doc.Root = root
			doc.Wrapper = true
		} else {
			doc.Root, _ = root.Get(keys[0])
		}
	}
	return doc, nil
}
