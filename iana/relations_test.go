package iana

import (
	"testing"

	"github.com/stretchr/testify/assert"

	restfu "github.com/ccbrown/rest-fu"
)

func TestIsKnown(t *testing.T) {
	for _, rel := range []restfu.LinkRelation{Self, Next, Prev, First, Last, Item, Collection} {
		assert.True(t, IsKnown(rel), rel.String())
	}

	// Lookups share LinkRelation's normalization.
	assert.True(t, IsKnown(restfu.Rel("NEXT")))
	assert.True(t, IsKnown(restfu.Rel(" self ")))

	assert.False(t, IsKnown(restfu.Rel("not-a-registered-relation")))
	assert.False(t, IsKnown(restfu.Rel("")))
}

func TestConstantsAreRegistered(t *testing.T) {
	for _, rel := range []restfu.LinkRelation{
		About, Alternate, Canonical, Collection, Current, DescribedBy, Describes,
		Edit, EditForm, Enclosure, First, Glossary, Help, Icon, Index, Item,
		Last, LatestVersion, License, Next, Original, Payment, Prev, Preview,
		Previous, Profile, Related, Search, Section, Self, Service, Start, Tag,
		TermsOfService, Type, Up, VersionHistory, Via,
	} {
		assert.True(t, IsKnown(rel), rel.String())
	}
}
