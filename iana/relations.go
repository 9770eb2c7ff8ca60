// Package iana provides the well-known link relation names from the IANA link
// relations registry as ordinary LinkRelation values, plus a lookup over a
// snapshot of the full registry. The core packages never depend on this one:
// these are plain relations with no special parsing or behavior.
package iana

import (
	_ "embed"

	jsoniter "github.com/json-iterator/go"

	restfu "github.com/ccbrown/rest-fu"
)

// Commonly referenced registered relations.
var (
	About          = restfu.Rel("about")
	Alternate      = restfu.Rel("alternate")
	Canonical      = restfu.Rel("canonical")
	Collection     = restfu.Rel("collection")
	Current        = restfu.Rel("current")
	DescribedBy    = restfu.Rel("describedby")
	Describes      = restfu.Rel("describes")
	Edit           = restfu.Rel("edit")
	EditForm       = restfu.Rel("edit-form")
	Enclosure      = restfu.Rel("enclosure")
	First          = restfu.Rel("first")
	Glossary       = restfu.Rel("glossary")
	Help           = restfu.Rel("help")
	Icon           = restfu.Rel("icon")
	Index          = restfu.Rel("index")
	Item           = restfu.Rel("item")
	Last           = restfu.Rel("last")
	LatestVersion  = restfu.Rel("latest-version")
	License        = restfu.Rel("license")
	Next           = restfu.Rel("next")
	Original       = restfu.Rel("original")
	Payment        = restfu.Rel("payment")
	Prev           = restfu.Rel("prev")
	Preview        = restfu.Rel("preview")
	Previous       = restfu.Rel("previous")
	Profile        = restfu.Rel("profile")
	Related        = restfu.Rel("related")
	Search         = restfu.Rel("search")
	Section        = restfu.Rel("section")
	Self           = restfu.Rel("self")
	Service        = restfu.Rel("service")
	Start          = restfu.Rel("start")
	Tag            = restfu.Rel("tag")
	TermsOfService = restfu.Rel("terms-of-service")
	Type           = restfu.Rel("type")
	Up             = restfu.Rel("up")
	VersionHistory = restfu.Rel("version-history")
	Via            = restfu.Rel("via")
)

//go:embed relations.json
var registryJSON []byte

var registry map[restfu.LinkRelation]struct{}

func init() {
	var names []string
	if err := jsoniter.Unmarshal(registryJSON, &names); err != nil {
		panic(err)
	}
	registry = make(map[restfu.LinkRelation]struct{}, len(names))
	for _, name := range names {
		registry[restfu.Rel(name)] = struct{}{}
	}
}

// IsKnown reports whether the relation appears in the embedded snapshot of the
// IANA link relations registry.
func IsKnown(rel restfu.LinkRelation) bool {
	_, ok := registry[rel]
	return ok
}
