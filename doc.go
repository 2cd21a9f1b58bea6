// Package xmlsorter converts XML text into a generic in-memory tree and
// back, keeping enough structural fidelity for round trips: attributes,
// repeated elements, processing instructions, DTD declarations, and CDATA.
//
// The tree is a small variant type, see Node. Parsing is fail-fast: the
// first structural problem aborts the call with a *ParseError carrying the
// kind, the offending tag, and its line. Composition is the inverse and
// never fails; its three optional comparators make it a convenient way to
// produce canonically sorted output, which is where the project got its
// name.
//
// The package does not aim for full XML conformance: no namespace
// resolution, no DTD-driven validation, no numeric character references,
// no external entities, and inputs are parsed from memory rather than
// streamed.
package xmlsorter
