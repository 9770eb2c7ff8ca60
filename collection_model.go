package restfu

import "reflect"

// A CollectionModel pairs zero or more payload elements with links. Alongside
// the elements it carries an element-type tag identifying their nominal type:
// an empty collection has no instance to infer the type from, but a renderer
// may still need it to emit an empty document of the right shape.
type CollectionModel[T any] struct {
	RepresentationModel
	content     []T
	elementType reflect.Type
}

// NewCollectionModel returns a collection model over the given contents,
// preserving their order. The element-type tag is inferred from the first
// element's dynamic type; for an empty contents slice it is left unset.
func NewCollectionModel[T any](contents []T, links ...Link) *CollectionModel[T] {
	m := &CollectionModel[T]{content: append([]T(nil), contents...)}
	if len(contents) > 0 {
		m.elementType = reflectTypeOfFirst(contents)
	}
	m.addLinks(links)
	return m
}

// reflectTypeOfFirst returns the dynamic type of the first element, which may
// be more specific than T when T is an interface.
func reflectTypeOfFirst[T any](contents []T) reflect.Type {
	return reflect.TypeOf(contents[0])
}

// EmptyCollectionModel returns an empty collection model without an
// element-type tag. Renderers that need the type must fail or fall back.
func EmptyCollectionModel[T any](links ...Link) *CollectionModel[T] {
	m := &CollectionModel[T]{}
	m.addLinks(links)
	return m
}

// EmptyCollectionModelWithType returns an empty collection model carrying the
// given element-type tag.
func EmptyCollectionModelWithType[T any](elementType reflect.Type, links ...Link) *CollectionModel[T] {
	m := &CollectionModel[T]{elementType: elementType}
	m.addLinks(links)
	return m
}

// WithFallbackType attaches the given element-type tag only if none is known
// yet; otherwise it is a no-op.
func (m *CollectionModel[T]) WithFallbackType(elementType reflect.Type) *CollectionModel[T] {
	if m.elementType == nil {
		m.elementType = elementType
	}
	return m
}

// Content returns the payload elements in insertion order. The result is never
// nil.
func (m *CollectionModel[T]) Content() []T {
	if m.content == nil {
		return []T{}
	}
	return append([]T(nil), m.content...)
}

// ElementType returns the element-type tag, or nil if it is unknown.
func (m *CollectionModel[T]) ElementType() reflect.Type {
	return m.elementType
}

func (m *CollectionModel[T]) Add(links ...Link) *CollectionModel[T] {
	m.addLinks(links)
	return m
}

func (m *CollectionModel[T]) AddIf(condition bool, links ...Link) *CollectionModel[T] {
	m.RepresentationModel.AddIf(condition, links...)
	return m
}

func (m *CollectionModel[T]) RemoveLinks(rel LinkRelation) *CollectionModel[T] {
	m.RepresentationModel.RemoveLinks(rel)
	return m
}
