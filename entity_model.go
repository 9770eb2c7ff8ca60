package restfu

import (
	"reflect"

	"github.com/pkg/errors"
)

// ErrMissingPayload is returned when an entity model is constructed without
// content. An entity model always carries exactly one payload value.
var ErrMissingPayload = errors.New("entity model content must not be nil")

// An EntityModel pairs a single payload value with links.
type EntityModel[T any] struct {
	RepresentationModel
	content T
}

// NewEntityModel returns an entity model wrapping the given content. Content
// is set once at construction and never replaced; wrap a new value in a new
// model instead.
func NewEntityModel[T any](content T, links ...Link) (*EntityModel[T], error) {
	if isNil(content) {
		return nil, ErrMissingPayload
	}
	m := &EntityModel[T]{content: content}
	m.addLinks(links)
	return m, nil
}

// isNil reports whether the value is nil through any nilable kind. Non-nilable
// kinds (structs, numbers, strings) are never nil.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// Content returns the payload value.
func (m *EntityModel[T]) Content() T {
	return m.content
}

func (m *EntityModel[T]) Add(links ...Link) *EntityModel[T] {
	m.addLinks(links)
	return m
}

func (m *EntityModel[T]) AddIf(condition bool, links ...Link) *EntityModel[T] {
	m.RepresentationModel.AddIf(condition, links...)
	return m
}

func (m *EntityModel[T]) RemoveLinks(rel LinkRelation) *EntityModel[T] {
	m.RepresentationModel.RemoveLinks(rel)
	return m
}
