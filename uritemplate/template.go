// Package uritemplate implements the URI Templates language described in RFC
// 6570: parsing a template into literals and variable expressions, expanding
// it against a set of values, and composing templates variable by variable.
package uritemplate

import (
	"fmt"
	"sort"
	"strings"
)

// A Template is an ordered sequence of segments, each either a literal string
// or an expression grouping one or more variables under a single operator.
// Templates are persistently immutable: With returns a new template and never
// modifies the receiver, so concurrent use requires no synchronization.
type Template struct {
	segments []segment
}

type segment interface {
	writePattern(sb *strings.Builder)
}

type literal string

func (l literal) writePattern(sb *strings.Builder) {
	sb.WriteString(string(l))
}

// expression is one {...} group: an operator shared by every variable in the
// group, the variables in declaration order, and a per-variable explode flag.
type expression struct {
	op      operator
	opChar  string
	vars    []Variable
	explode []bool
}

func (x *expression) writePattern(sb *strings.Builder) {
	sb.WriteByte('{')
	sb.WriteString(x.opChar)
	for i, v := range x.vars {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.name)
		if x.explode[i] {
			sb.WriteByte('*')
		}
	}
	sb.WriteByte('}')
}

// MalformedTemplateError indicates a structurally invalid template pattern,
// such as unbalanced braces or an empty expression.
type MalformedTemplateError struct {
	Pattern string
	Offset  int
	Message string
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("malformed uri template %q at offset %d: %s", e.Pattern, e.Offset, e.Message)
}

// New returns an empty template, suitable as a starting point for composition
// with With.
func New() *Template {
	return &Template{}
}

// Parse parses a template pattern into literal and expression segments. Only
// structure is validated: values are neither required nor checked here.
func Parse(pattern string) (*Template, error) {
	t := &Template{}
	start := 0
	for i := 0; i < len(pattern); {
		switch pattern[i] {
		case '{':
			if i > start {
				t.segments = append(t.segments, literal(pattern[start:i]))
			}
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return nil, &MalformedTemplateError{Pattern: pattern, Offset: i, Message: "unclosed expression"}
			}
			end += i
			x, err := parseExpression(pattern, i+1, end)
			if err != nil {
				return nil, err
			}
			t.segments = append(t.segments, x)
			i = end + 1
			start = i
		case '}':
			return nil, &MalformedTemplateError{Pattern: pattern, Offset: i, Message: "unmatched '}'"}
		default:
			i++
		}
	}
	if start < len(pattern) {
		t.segments = append(t.segments, literal(pattern[start:]))
	}
	return t, nil
}

// MustParse is Parse, but panics on error. Intended for constant patterns.
func MustParse(pattern string) *Template {
	t, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// parseExpression parses pattern[start:end], the contents of one brace pair.
func parseExpression(pattern string, start, end int) (*expression, error) {
	body := pattern[start:end]
	if body == "" {
		return nil, &MalformedTemplateError{Pattern: pattern, Offset: start - 1, Message: "empty expression"}
	}
	if j := strings.IndexByte(body, '{'); j >= 0 {
		return nil, &MalformedTemplateError{Pattern: pattern, Offset: start + j, Message: "nested '{'"}
	}

	typ := SIMPLE
	if t, ok := typeForOperator(rune(body[0])); ok {
		typ = t
		body = body[1:]
		if body == "" {
			return nil, &MalformedTemplateError{Pattern: pattern, Offset: start - 1, Message: "expression has an operator but no variables"}
		}
	}

	x := &expression{op: typ.operator(), opChar: typ.opChar()}
	for _, name := range strings.Split(body, ",") {
		exploded := strings.HasSuffix(name, "*")
		if exploded {
			name = name[:len(name)-1]
		}
		v, err := NewVariable(name, typ)
		if err != nil {
			return nil, err
		}
		x.vars = append(x.vars, v)
		x.explode = append(x.explode, exploded)
	}
	return x, nil
}

// String reconstructs the template pattern. For a parsed template the result
// is byte-identical to the original input. String never expands.
func (t *Template) String() string {
	var sb strings.Builder
	for _, seg := range t.segments {
		seg.writePattern(&sb)
	}
	return sb.String()
}

// With returns a new template extended by a group containing the given
// variable; the receiver is unchanged. If the template already ends with a
// group using the same operator, the variable joins that group for compact
// rendering; expansion is identical either way. A variable whose name is
// already present in the template returns the receiver unchanged.
func (t *Template) With(v Variable) *Template {
	for _, existing := range t.Variables() {
		if existing.name == v.name {
			return t
		}
	}

	nt := &Template{segments: append([]segment(nil), t.segments...)}
	if n := len(nt.segments); n > 0 {
		if x, ok := nt.segments[n-1].(*expression); ok && x.opChar == v.typ.opChar() {
			merged := &expression{
				op:      x.op,
				opChar:  x.opChar,
				vars:    append(append([]Variable(nil), x.vars...), v),
				explode: append(append([]bool(nil), x.explode...), v.typ.explodes()),
			}
			nt.segments[n-1] = merged
			return nt
		}
	}
	nt.segments = append(nt.segments, &expression{
		op:      v.typ.operator(),
		opChar:  v.typ.opChar(),
		vars:    []Variable{v},
		explode: []bool{v.typ.explodes()},
	})
	return nt
}

// Variables returns the template's variables in template order.
func (t *Template) Variables() []Variable {
	var vars []Variable
	for _, seg := range t.segments {
		if x, ok := seg.(*expression); ok {
			vars = append(vars, x.vars...)
		}
	}
	return vars
}

// VariableNames returns the names of the template's variables in template
// order.
func (t *Template) VariableNames() []string {
	var names []string
	for _, v := range t.Variables() {
		names = append(names, v.name)
	}
	return names
}

// HasVariables reports whether the template contains at least one expression.
func (t *Template) HasVariables() bool {
	for _, seg := range t.segments {
		if _, ok := seg.(*expression); ok {
			return true
		}
	}
	return false
}

// Values maps variable names to the values they expand to. A value must be a
// string, a []string, or a map[string]string; a nil or missing entry means the
// variable is absent. Map values expand in sorted key order so that expansion
// is deterministic.
type Values map[string]any

// UnresolvableVariableError indicates a value whose shape is incompatible with
// its variable's declared type.
type UnresolvableVariableError struct {
	Name    string
	Message string
}

func (e *UnresolvableVariableError) Error() string {
	return fmt.Sprintf("cannot expand variable %q: %s", e.Name, e.Message)
}

// Expand renders the template against the given values. Literal segments are
// emitted verbatim. An expression whose variables are all absent is omitted
// entirely, including its operator prefix. Expansion is all-or-nothing: on
// error the empty string is returned.
func (t *Template) Expand(values Values) (string, error) {
	var sb strings.Builder
	for _, seg := range t.segments {
		switch s := seg.(type) {
		case literal:
			sb.WriteString(string(s))
		case *expression:
			part, err := s.expand(values)
			if err != nil {
				return "", err
			}
			sb.WriteString(part)
		}
	}
	return sb.String(), nil
}

func (x *expression) expand(values Values) (string, error) {
	var parts []string
	for i, v := range x.vars {
		value, ok := values[v.name]
		if !ok || value == nil {
			continue
		}
		exploded := x.explode[i] || v.typ.explodes()
		part, present, err := x.expandVariable(v, exploded, value)
		if err != nil {
			return "", err
		}
		if present {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return x.op.first + strings.Join(parts, x.op.sep), nil
}

func (x *expression) expandVariable(v Variable, exploded bool, value any) (string, bool, error) {
	switch val := value.(type) {
	case string:
		return x.renderScalar(v.name, val), true, nil

	case []string:
		if len(val) == 0 {
			return "", false, nil
		}
		if exploded {
			parts := make([]string, len(val))
			for i, e := range val {
				parts[i] = x.renderScalar(v.name, e)
			}
			return strings.Join(parts, x.op.sep), true, nil
		}
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = escape(e, x.op.allowReserved)
		}
		joined := strings.Join(parts, ",")
		if x.op.named {
			return v.name + "=" + joined, true, nil
		}
		return joined, true, nil

	case map[string]string:
		if len(val) == 0 {
			return "", false, nil
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if exploded {
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = escape(k, x.op.allowReserved) + "=" + escape(val[k], x.op.allowReserved)
			}
			return strings.Join(parts, x.op.sep), true, nil
		}
		if !x.op.named && len(x.vars) == 1 && scalarOnly(v.typ) {
			return "", false, &UnresolvableVariableError{
				Name:    v.name,
				Message: fmt.Sprintf("%v expansion of a single variable requires a scalar or sequence value, got a map", v.typ),
			}
		}
		parts := make([]string, 0, 2*len(keys))
		for _, k := range keys {
			parts = append(parts, escape(k, x.op.allowReserved), escape(val[k], x.op.allowReserved))
		}
		joined := strings.Join(parts, ",")
		if x.op.named {
			return v.name + "=" + joined, true, nil
		}
		return joined, true, nil

	default:
		return "", false, &UnresolvableVariableError{
			Name:    v.name,
			Message: fmt.Sprintf("unsupported value of type %T", value),
		}
	}
}

// renderScalar renders one scalar value: name=value for named operators (with
// the operator's empty-value form when the value is empty), the bare escaped
// value otherwise.
func (x *expression) renderScalar(name, value string) string {
	if !x.op.named {
		return escape(value, x.op.allowReserved)
	}
	if value == "" {
		return name + x.op.emptyForm
	}
	return name + "=" + escape(value, x.op.allowReserved)
}

// scalarOnly reports whether the type accepts only scalar or sequence values.
func scalarOnly(t VariableType) bool {
	switch t {
	case SIMPLE, RESERVED, FRAGMENT:
		return true
	default:
		return false
	}
}
