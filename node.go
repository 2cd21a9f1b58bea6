package xmlsorter

// Node is a value in a parsed document tree:
//
// * Scalar: collapsed text content
// * Element: a mapping from child name to Node, in insertion order
// * Sequence: ordered same-name siblings
//
// A Sequence never contains another Sequence; duplicate same-name siblings
// always flatten into a single Sequence.
type Node interface {
	node()

	// Copy the node into a new, independent instance.
	//
	// Parsed trees are safe to read concurrently, this function makes a deep
	// copy for the case when a caller wants to mutate one afterwards.
	Copy() Node
}

// Scalar is the collapsed text content of an element that had no attributes
// and no child elements.
type Scalar string

func (Scalar) node() {}

func (s Scalar) Copy() Node {
	return s
}

// Sequence holds the ordered values of repeated same-name sibling elements.
type Sequence []Node

func (Sequence) node() {}

func (q Sequence) Copy() Node {
	c := make(Sequence, len(q))
	for i, n := range q {
		c[i] = n.Copy()
	}
	return c
}

// Element maps child names to nodes, remembering insertion order. The
// reserved text and attribute slots live inside the mapping under their
// configured keys; both defaults fail the element name grammar so the
// composer never emits them as child elements.
//
// The zero value is an empty element ready for use.
type Element struct {
	children map[string]Node
	order    []string
}

func (*Element) node() {}

// Get returns the node stored under name.
func (e *Element) Get(name string) (Node, bool) {
	n, ok := e.children[name]
	return n, ok
}

// Set stores n under name. A new name is appended to the element's key
// order; overwriting keeps the original position.
func (e *Element) Set(name string, n Node) {
	if e.children == nil {
		e.children = make(map[string]Node)
	}
	if _, ok := e.children[name]; !ok {
		e.order = append(e.order, name)
	}
	e.children[name] = n
}

// Delete removes the node stored under name, if any.
func (e *Element) Delete(name string) {
	if _, ok := e.children[name]; !ok {
		return
	}
	delete(e.children, name)
	for i, k := range e.order {
		if k == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Keys returns the child names in insertion order.
func (e *Element) Keys() []string {
	keys := make([]string, len(e.order))
	copy(keys, e.order)
	return keys
}

// Len returns the number of children, reserved slots included.
func (e *Element) Len() int {
	return len(e.children)
}

func (e *Element) Copy() Node {
	c := &Element{}
	for _, k := range e.order {
		c.Set(k, e.children[k].Copy())
	}
	return c
}

// Equal reports deep equality of two nodes. Element children are compared
// by key set and value, not by insertion order, so a tree survives a sorted
// composition round trip.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case Scalar:
		bs, ok := b.(Scalar)
		return ok && a == bs
	case Sequence:
		bq, ok := b.(Sequence)
		if !ok || len(a) != len(bq) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bq[i]) {
				return false
			}
		}
		return true
	case *Element:
		be, ok := b.(*Element)
		if !ok || a.Len() != be.Len() {
			return false
		}
		for _, k := range a.order {
			bn, ok := be.Get(k)
			if !ok || !Equal(a.children[k], bn) {
				return false
			}
		}
		return true
	}
	return false
}

// Document is the result of a successful parse.
type Document struct {
	// Root is the document tree: the top-level element's node, or the
	// synthetic wrapper element holding it when Options.RetainRoot is set.
	Root Node

	// Name is the recorded document element name.
	Name string

	// Prolog holds every processing instruction and DTD declaration
	// verbatim, in discovery order, for replay during composition.
	Prolog []string

	// Wrapper reports whether Root retains the synthetic top-level wrapper.
	Wrapper bool
}
