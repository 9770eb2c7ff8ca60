package restfu

import "fmt"

// LinkNotFoundError is returned by RequiredLink when no link with the
// requested relation is present.
type LinkNotFoundError struct {
	Relation LinkRelation
}

func (e *LinkNotFoundError) Error() string {
	return fmt.Sprintf("no link with relation %q", e.Relation)
}

// RepresentationModel holds an ordered, de-duplicating collection of links.
// It is the capability shared by all model types, which embed it by value and
// redeclare the chaining mutators with their own return type.
//
// Models are builders: they are intended to be assembled by a single owner and
// then handed to a renderer as read-only data. Concurrent mutation of one
// model is not synchronized internally and must be prevented by the caller.
type RepresentationModel struct {
	links []Link
}

func (m *RepresentationModel) addLinks(links []Link) {
	for _, link := range links {
		if !m.containsLink(link) {
			m.links = append(m.links, link)
		}
	}
}

func (m *RepresentationModel) containsLink(link Link) bool {
	for _, existing := range m.links {
		if existing == link {
			return true
		}
	}
	return false
}

// Add appends the given links, skipping any link equal to one already present.
func (m *RepresentationModel) Add(links ...Link) *RepresentationModel {
	m.addLinks(links)
	return m
}

// AddIf is Add when the condition holds and a no-op otherwise.
func (m *RepresentationModel) AddIf(condition bool, links ...Link) *RepresentationModel {
	if condition {
		m.addLinks(links)
	}
	return m
}

// RemoveLinks removes every link with the given relation.
func (m *RepresentationModel) RemoveLinks(rel LinkRelation) *RepresentationModel {
	kept := m.links[:0]
	for _, link := range m.links {
		if link.rel != rel {
			kept = append(kept, link)
		}
	}
	m.links = kept
	return m
}

// Links returns all links in insertion order.
func (m *RepresentationModel) Links() []Link {
	return append([]Link(nil), m.links...)
}

// LinksWithRel returns the links with the given relation in insertion order.
// The result may be empty.
func (m *RepresentationModel) LinksWithRel(rel LinkRelation) []Link {
	var links []Link
	for _, link := range m.links {
		if link.rel == rel {
			links = append(links, link)
		}
	}
	return links
}

// HasLink reports whether a link with the given relation is present.
func (m *RepresentationModel) HasLink(rel LinkRelation) bool {
	for _, link := range m.links {
		if link.rel == rel {
			return true
		}
	}
	return false
}

// RequiredLink returns the first link with the given relation, or a
// LinkNotFoundError if there is none.
func (m *RepresentationModel) RequiredLink(rel LinkRelation) (Link, error) {
	for _, link := range m.links {
		if link.rel == rel {
			return link, nil
		}
	}
	return Link{}, &LinkNotFoundError{Relation: rel}
}
