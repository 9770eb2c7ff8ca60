package uritemplate

import (
	"fmt"
	"strings"
)

// VariableType determines the expansion behavior of a variable: the operator
// character its expression group is rendered with, the separator between
// values, whether values are rendered as name=value pairs, and which
// characters may appear unencoded in expanded values.
type VariableType int

const (
	// {var} - simple string expansion.
	SIMPLE VariableType = iota

	// {+var} - reserved expansion. Characters from the RFC 3986 reserved set
	// pass through unencoded.
	RESERVED

	// {#var} - fragment expansion.
	FRAGMENT

	// {.var} - label expansion with a dot prefix.
	DOT

	// {/var} - path segment expansion.
	PATH_SEGMENT

	// A name/value pair rendered with path-style parameter semantics, e.g.
	// ";q=value", or just ";q" when the value is the empty string. Expands
	// identically to PATH_STYLE_PARAMETER; exists so callers composing
	// templates variable-by-variable can declare the intent explicitly.
	NAME

	// {;var} - path-style parameter expansion.
	PATH_STYLE_PARAMETER

	// {?var} - form-style query expansion.
	REQUEST_PARAM

	// {&var} - form-style query continuation.
	REQUEST_PARAM_CONTINUED

	// {var*} - exploded simple expansion. A sequence renders as its elements
	// joined by commas; a mapping renders as key=value pairs.
	COMPOSITE

	// {?var*} - exploded form-style query expansion. Each element of a
	// sequence (or entry of a mapping) renders as its own name=value pair.
	LIST

	// {&var*} - exploded form-style query continuation.
	LIST_CONTINUED
)

func (t VariableType) String() string {
	switch t {
	case SIMPLE:
		return "SIMPLE"
	case RESERVED:
		return "RESERVED"
	case FRAGMENT:
		return "FRAGMENT"
	case DOT:
		return "DOT"
	case PATH_SEGMENT:
		return "PATH_SEGMENT"
	case NAME:
		return "NAME"
	case PATH_STYLE_PARAMETER:
		return "PATH_STYLE_PARAMETER"
	case REQUEST_PARAM:
		return "REQUEST_PARAM"
	case REQUEST_PARAM_CONTINUED:
		return "REQUEST_PARAM_CONTINUED"
	case COMPOSITE:
		return "COMPOSITE"
	case LIST:
		return "LIST"
	case LIST_CONTINUED:
		return "LIST_CONTINUED"
	default:
		return "INVALID"
	}
}

// operator holds the RFC 6570 composition rules shared by all variables in one
// expression group.
type operator struct {
	first         string
	sep           string
	named         bool
	emptyForm     string
	allowReserved bool
}

var (
	simpleOp   = operator{first: "", sep: ",", named: false}
	reservedOp = operator{first: "", sep: ",", allowReserved: true}
	fragmentOp = operator{first: "#", sep: ",", allowReserved: true}
	dotOp      = operator{first: ".", sep: "."}
	segmentOp  = operator{first: "/", sep: "/"}
	pathOp     = operator{first: ";", sep: ";", named: true, emptyForm: ""}
	queryOp    = operator{first: "?", sep: "&", named: true, emptyForm: "="}
	continueOp = operator{first: "&", sep: "&", named: true, emptyForm: "="}
)

func (t VariableType) operator() operator {
	switch t {
	case RESERVED:
		return reservedOp
	case FRAGMENT:
		return fragmentOp
	case DOT:
		return dotOp
	case PATH_SEGMENT:
		return segmentOp
	case NAME, PATH_STYLE_PARAMETER:
		return pathOp
	case REQUEST_PARAM, LIST:
		return queryOp
	case REQUEST_PARAM_CONTINUED, LIST_CONTINUED:
		return continueOp
	default:
		return simpleOp
	}
}

// opChar returns the operator character that introduces an expression of this
// type, or the empty string for simple expansion.
func (t VariableType) opChar() string {
	switch t {
	case RESERVED:
		return "+"
	case FRAGMENT:
		return "#"
	case DOT:
		return "."
	case PATH_SEGMENT:
		return "/"
	case NAME, PATH_STYLE_PARAMETER:
		return ";"
	case REQUEST_PARAM, LIST:
		return "?"
	case REQUEST_PARAM_CONTINUED, LIST_CONTINUED:
		return "&"
	default:
		return ""
	}
}

// explodes reports whether the type itself implies explode semantics,
// independently of a trailing "*" recorded by the parser.
func (t VariableType) explodes() bool {
	switch t {
	case COMPOSITE, LIST, LIST_CONTINUED:
		return true
	default:
		return false
	}
}

// Required reports whether the variable is expected to be present at expansion
// time. Optional types simply render nothing when their value is absent.
func (t VariableType) Required() bool {
	switch t {
	case REQUEST_PARAM, REQUEST_PARAM_CONTINUED, COMPOSITE, LIST, LIST_CONTINUED:
		return false
	default:
		return true
	}
}

// typeForOperator maps an expression's leading operator character to the
// variable type it declares.
func typeForOperator(r rune) (VariableType, bool) {
	switch r {
	case '+':
		return RESERVED, true
	case '#':
		return FRAGMENT, true
	case '.':
		return DOT, true
	case '/':
		return PATH_SEGMENT, true
	case ';':
		return PATH_STYLE_PARAMETER, true
	case '?':
		return REQUEST_PARAM, true
	case '&':
		return REQUEST_PARAM_CONTINUED, true
	default:
		return SIMPLE, false
	}
}

// A Variable describes one named variable occurrence and its expansion type.
// Variables are immutable values; two variables are considered equal when
// their names and types match.
type Variable struct {
	name        string
	typ         VariableType
	description string
}

// NewVariable returns a variable with the given name and type. The name must
// be a valid variable token: letters, digits, '_', '.', or percent-encoded
// triplets.
func NewVariable(name string, t VariableType) (Variable, error) {
	if err := validateVariableName(name); err != nil {
		return Variable{}, err
	}
	return Variable{name: name, typ: t}, nil
}

// NewVariableWithDescription is NewVariable with an informational description
// attached. The description never affects expansion or equality.
func NewVariableWithDescription(name string, t VariableType, description string) (Variable, error) {
	v, err := NewVariable(name, t)
	if err != nil {
		return Variable{}, err
	}
	v.description = description
	return v, nil
}

// MustNewVariable is NewVariable, but panics on an invalid name. Intended for
// variables with constant names.
func MustNewVariable(name string, t VariableType) Variable {
	v, err := NewVariable(name, t)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Variable) Name() string       { return v.name }
func (v Variable) Type() VariableType { return v.typ }

// Description returns the informational description, if any.
func (v Variable) Description() string { return v.description }

// Required reports whether the variable's type is one of the required types.
// Optional types render nothing when their value is absent rather than
// failing.
func (v Variable) Required() bool { return v.typ.Required() }

// Equal reports whether the two variables have the same name and type.
// Descriptions are informational only and do not participate.
func (v Variable) Equal(other Variable) bool {
	return v.name == other.name && v.typ == other.typ
}

// String returns the canonical single-variable expression for v, e.g. "{?q}"
// for a REQUEST_PARAM variable named q, or "{?q*}" for a LIST variable.
func (v Variable) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(v.typ.opChar())
	sb.WriteString(v.name)
	if v.typ.explodes() {
		sb.WriteByte('*')
	}
	sb.WriteByte('}')
	return sb.String()
}

// InvalidVariableNameError indicates a variable name that is empty or contains
// characters outside the allowed token grammar.
type InvalidVariableNameError struct {
	Name string
}

func (e *InvalidVariableNameError) Error() string {
	if e.Name == "" {
		return "invalid variable name: name must not be empty"
	}
	return fmt.Sprintf("invalid variable name: %q", e.Name)
}

func isVariableNameCharacter(r rune) bool {
	return r == '_' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isHexDigit(r byte) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func validateVariableName(name string) error {
	if name == "" {
		return &InvalidVariableNameError{Name: name}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '%' {
			if i+2 >= len(name) || !isHexDigit(name[i+1]) || !isHexDigit(name[i+2]) {
				return &InvalidVariableNameError{Name: name}
			}
			i += 2
			continue
		}
		if !isVariableNameCharacter(rune(c)) {
			return &InvalidVariableNameError{Name: name}
		}
	}
	return nil
}
