package restfu

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"

	"github.com/ccbrown/rest-fu/uritemplate"
)

// EncodeCursor serializes a pagination cursor into an opaque URL-safe string.
// The cursor must be able to be marshaled to binary.
func EncodeCursor(cursor any) (string, error) {
	b, err := msgpack.Marshal(cursor)
	if err != nil {
		return "", errors.Wrap(err, "error marshaling cursor")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeCursor deserializes a cursor produced by EncodeCursor into the value
// pointed to by cursor.
func DecodeCursor(s string, cursor any) error {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return errors.Wrap(err, "error decoding cursor")
	}
	return errors.Wrap(msgpack.Unmarshal(b, cursor), "error unmarshaling cursor")
}

// WithCursorNavigation expands the given templated link, whose template is
// expected to declare a "cursor" variable, into next/prev navigation links for
// the given cursors and adds them to the model. A nil cursor skips its link,
// so open ends of the result set simply have no link.
func (m *SlicedModel[T]) WithCursorNavigation(template Link, next, prev any) (*SlicedModel[T], error) {
	cursorLink := func(rel LinkRelation, cursor any) error {
		encoded, err := EncodeCursor(cursor)
		if err != nil {
			return errors.Wrapf(err, "error building %q navigation link", rel)
		}
		expanded, err := template.Expand(uritemplate.Values{"cursor": encoded})
		if err != nil {
			return errors.Wrapf(err, "error building %q navigation link", rel)
		}
		m.Add(expanded.WithRel(rel))
		return nil
	}

	if next != nil {
		if err := cursorLink(Rel("next"), next); err != nil {
			return nil, err
		}
	}
	if prev != nil {
		if err := cursorLink(Rel("prev"), prev); err != nil {
			return nil, err
		}
	}
	return m, nil
}
