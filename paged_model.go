package restfu

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/ccbrown/rest-fu/uritemplate"
)

// PageMetadata describes the position of a page within a fully counted result
// set: the requested page size, the zero-based page number, and the total
// element and page counts.
type PageMetadata struct {
	size          int64
	number        int64
	totalElements int64
	totalPages    int64
}

// NewPageMetadata returns metadata for the given page. The total page count is
// derived from the element count and page size by ceiling division.
func NewPageMetadata(size, number, totalElements int64) (PageMetadata, error) {
	if size < 0 {
		return PageMetadata{}, errors.New("page size must not be negative")
	}
	if number < 0 {
		return PageMetadata{}, errors.New("page number must not be negative")
	}
	if totalElements < 0 {
		return PageMetadata{}, errors.New("total element count must not be negative")
	}
	var totalPages int64
	if size > 0 {
		totalPages = (totalElements + size - 1) / size
	}
	return PageMetadata{
		size:          size,
		number:        number,
		totalElements: totalElements,
		totalPages:    totalPages,
	}, nil
}

func (p PageMetadata) Size() int64          { return p.size }
func (p PageMetadata) Number() int64        { return p.number }
func (p PageMetadata) TotalElements() int64 { return p.totalElements }
func (p PageMetadata) TotalPages() int64    { return p.totalPages }

// SliceMetadata describes the position of a slice within an open-ended result
// set, such as one paginated by cursor. Unlike PageMetadata it carries no
// total counts: they are unknown by construction.
type SliceMetadata struct {
	size   int64
	number int64
}

func NewSliceMetadata(size, number int64) (SliceMetadata, error) {
	if size < 0 {
		return SliceMetadata{}, errors.New("slice size must not be negative")
	}
	if number < 0 {
		return SliceMetadata{}, errors.New("slice number must not be negative")
	}
	return SliceMetadata{size: size, number: number}, nil
}

func (s SliceMetadata) Size() int64   { return s.size }
func (s SliceMetadata) Number() int64 { return s.number }

// A PagedModel is a collection model for one page of a counted result set.
type PagedModel[T any] struct {
	CollectionModel[T]
	metadata PageMetadata
}

// NewPagedModel returns a paged model over the given page contents and
// metadata.
func NewPagedModel[T any](contents []T, metadata PageMetadata, links ...Link) *PagedModel[T] {
	m := &PagedModel[T]{metadata: metadata}
	m.content = append([]T(nil), contents...)
	if len(contents) > 0 {
		m.elementType = reflectTypeOfFirst(contents)
	}
	m.addLinks(links)
	return m
}

// Metadata returns the page metadata.
func (m *PagedModel[T]) Metadata() PageMetadata {
	return m.metadata
}

// WithNavigation expands the given templated link, whose template is expected
// to declare "page" and "size" variables, into self/first/prev/next/last
// navigation links as applicable for the current page, and adds them to the
// model.
func (m *PagedModel[T]) WithNavigation(template Link) (*PagedModel[T], error) {
	pageLink := func(rel LinkRelation, page int64) (Link, error) {
		expanded, err := template.Expand(uritemplate.Values{
			"page": strconv.FormatInt(page, 10),
			"size": strconv.FormatInt(m.metadata.size, 10),
		})
		if err != nil {
			return Link{}, errors.Wrapf(err, "error building %q navigation link", rel)
		}
		return expanded.WithRel(rel), nil
	}

	self, err := pageLink(SelfRel, m.metadata.number)
	if err != nil {
		return nil, err
	}
	m.Add(self)

	if m.metadata.totalPages > 0 {
		first, err := pageLink(Rel("first"), 0)
		if err != nil {
			return nil, err
		}
		last, err := pageLink(Rel("last"), m.metadata.totalPages-1)
		if err != nil {
			return nil, err
		}
		m.Add(first, last)
	}
	if m.metadata.number > 0 {
		prev, err := pageLink(Rel("prev"), m.metadata.number-1)
		if err != nil {
			return nil, err
		}
		m.Add(prev)
	}
	if m.metadata.number+1 < m.metadata.totalPages {
		next, err := pageLink(Rel("next"), m.metadata.number+1)
		if err != nil {
			return nil, err
		}
		m.Add(next)
	}
	return m, nil
}

func (m *PagedModel[T]) Add(links ...Link) *PagedModel[T] {
	m.addLinks(links)
	return m
}

func (m *PagedModel[T]) AddIf(condition bool, links ...Link) *PagedModel[T] {
	m.RepresentationModel.AddIf(condition, links...)
	return m
}

func (m *PagedModel[T]) RemoveLinks(rel LinkRelation) *PagedModel[T] {
	m.RepresentationModel.RemoveLinks(rel)
	return m
}

// A SlicedModel is a collection model for one slice of an open-ended result
// set.
type SlicedModel[T any] struct {
	CollectionModel[T]
	metadata SliceMetadata
}

// NewSlicedModel returns a sliced model over the given slice contents and
// metadata.
func NewSlicedModel[T any](contents []T, metadata SliceMetadata, links ...Link) *SlicedModel[T] {
	m := &SlicedModel[T]{metadata: metadata}
	m.content = append([]T(nil), contents...)
	if len(contents) > 0 {
		m.elementType = reflectTypeOfFirst(contents)
	}
	m.addLinks(links)
	return m
}

// Metadata returns the slice metadata.
func (m *SlicedModel[T]) Metadata() SliceMetadata {
	return m.metadata
}

func (m *SlicedModel[T]) Add(links ...Link) *SlicedModel[T] {
	m.addLinks(links)
	return m
}

func (m *SlicedModel[T]) AddIf(condition bool, links ...Link) *SlicedModel[T] {
	m.RepresentationModel.AddIf(condition, links...)
	return m
}

func (m *SlicedModel[T]) RemoveLinks(rel LinkRelation) *SlicedModel[T] {
	m.RepresentationModel.RemoveLinks(rel)
	return m
}
