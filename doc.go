// Package smartdiff is an order-insensitive structured data comparator. It
// decides whether two JSON documents hold the same content regardless of
// object key order or array element order, and reports where they differ in
// a way that maps straight onto lines of rendered text.
//
// Instead of operating on JSON directly, smartdiff operates on document trees
// made of a closed set of value types, two complex types:
//
//	Object
//	Array
//
// and four scalar types:
//
//	String, Number, Bool, Null
//
// FromInterface converts the go types created by unmarshaling from JSON or
// YAML into a tree, Decode parses raw text (plain, or base64 wrapped JSON).
//
// Comparison happens in stages:
//
//  1. Canonicalize puts a tree in normal form: object keys sorted, array
//     elements sorted by a total order over every value (see Order)
//  2. Compare produces a verdict, failing fast on kind or size mismatches
//     before comparing canonical forms
//  3. Diff walks two canonical trees and records the differing locations of
//     each side. Lists of records are aligned by an inferred join key (see
//     ChooseJoinKey) so reordered records line up, other lists by position
//  4. Render writes a canonical tree as indented text & indexes the lines
//     every location occupies
//
// Report ties these together. this is not a minimal edit script: smartdiff
// looks for a content-aligned correspondence between documents, not the
// fewest possible changes
package smartdiff
