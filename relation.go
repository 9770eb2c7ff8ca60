// Package restfu provides the building blocks for hypermedia APIs: immutable
// links with RFC 8288 attributes, normalized link relations, and
// representation models that pair payload data with an ordered set of links
// for a renderer to serialize.
package restfu

import "strings"

// A LinkRelation names the semantic relationship between a resource and a
// linked resource, e.g. "self" or "next". Relations are value objects: two
// relations are equal exactly when their normalized (trimmed, lowercased)
// forms are equal, so LinkRelation values can be compared with == and used as
// map keys.
type LinkRelation struct {
	value string
}

// Rel returns the relation for the given name. Any name is accepted;
// normalization happens here so all downstream comparisons are
// case-insensitive.
func Rel(value string) LinkRelation {
	return LinkRelation{value: strings.ToLower(strings.TrimSpace(value))}
}

// SelfRel is the relation links default to when none is given.
var SelfRel = Rel("self")

func (r LinkRelation) String() string {
	return r.value
}
