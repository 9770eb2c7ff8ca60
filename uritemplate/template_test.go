package uritemplate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_RoundTrip(t *testing.T) {
	for _, pattern := range []string{
		"",
		"/people",
		"{var}",
		"{+path}/here",
		"X{#var}",
		"{x,y}",
		"X{.x,y}",
		"{/var,x}/here",
		"{;x,y,empty}",
		"{?x,y,empty}",
		"{&x}",
		"{?list*}",
		"{/list*,path}",
		"/{segment}/something{?parameter}",
		"http://example.com/search{?q,lang}{&page}",
	} {
		parsed, err := Parse(pattern)
		require.NoError(t, err, pattern)
		assert.Equal(t, pattern, parsed.String())
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, pattern := range []string{
		"{",
		"}",
		"{}",
		"/people}",
		"/people{var",
		"{a{b}}",
		"{?}",
	} {
		_, err := Parse(pattern)
		var malformed *MalformedTemplateError
		assert.ErrorAs(t, err, &malformed, pattern)
	}

	_, err := Parse("{foo bar}")
	var invalidName *InvalidVariableNameError
	assert.ErrorAs(t, err, &invalidName)
}

func TestParse_Variables(t *testing.T) {
	parsed, err := Parse("/{segment}/something{?parameter,list*}")
	require.NoError(t, err)
	assert.Equal(t, []string{"segment", "parameter", "list"}, parsed.VariableNames())

	vars := parsed.Variables()
	require.Len(t, vars, 3)
	assert.Equal(t, SIMPLE, vars[0].Type())
	assert.Equal(t, REQUEST_PARAM, vars[1].Type())
	assert.Equal(t, REQUEST_PARAM, vars[2].Type())
	assert.True(t, parsed.HasVariables())
	assert.False(t, MustParse("/people").HasVariables())
}

// Expansion cases mirror the examples of RFC 6570 sections 1.2 and 3.2.
func TestTemplate_Expand(t *testing.T) {
	values := Values{
		"var":   "value",
		"hello": "Hello World!",
		"path":  "/foo/bar",
		"empty": "",
		"x":     "1024",
		"y":     "768",
		"list":  []string{"red", "green", "blue"},
		"keys":  map[string]string{"semi": ";", "dot": ".", "comma": ","},
	}

	for pattern, expected := range map[string]string{
		"{var}":           "value",
		"{hello}":         "Hello%20World%21",
		"{+path}/here":    "/foo/bar/here",
		"{+hello}":        "Hello%20World!",
		"{#hello}":        "#Hello%20World!",
		"{x,y}":           "1024,768",
		"{x,hello,y}":     "1024,Hello%20World%21,768",
		"X{.x,y}":         "X.1024.768",
		"{/var,x}/here":   "/value/1024/here",
		"{;x,y}":          ";x=1024;y=768",
		"{;x,y,empty}":    ";x=1024;y=768;empty",
		"{?x,y}":          "?x=1024&y=768",
		"{?x,y,empty}":    "?x=1024&y=768&empty=",
		"{&x}":            "&x=1024",
		"{list}":          "red,green,blue",
		"{list*}":         "red,green,blue",
		"{/list*}":        "/red/green/blue",
		"{?list}":         "?list=red,green,blue",
		"{?list*}":        "?list=red&list=green&list=blue",
		"{&list*}":        "&list=red&list=green&list=blue",
		"{?keys}":         "?keys=comma,%2C,dot,.,semi,%3B",
		"{?keys*}":        "?comma=%2C&dot=.&semi=%3B",
		"{;keys*}":        ";comma=%2C;dot=.;semi=%3B",
		"{keys*}":         "comma=%2C,dot=.,semi=%3B",
		"{+keys,var}":     "comma,%2C,dot,.,semi,;,value",
		"{var,undefined}": "value",
	} {
		parsed, err := Parse(pattern)
		require.NoError(t, err, pattern)
		actual, err := parsed.Expand(values)
		require.NoError(t, err, pattern)
		assert.Equal(t, expected, actual, pattern)
	}
}

func TestTemplate_Expand_AbsentValues(t *testing.T) {
	parsed := MustParse("/{segment}/something{?parameter}")

	actual, err := parsed.Expand(Values{"segment": "people"})
	require.NoError(t, err)
	assert.Equal(t, "/people/something", actual)

	actual, err = parsed.Expand(Values{"segment": "people", "parameter": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/people/something?parameter=42", actual)

	// An explicitly nil value is absent too, and empty composites render
	// nothing rather than a dangling prefix.
	for _, values := range []Values{
		{"segment": "people", "parameter": nil},
		{"segment": "people", "parameter": []string{}},
		{"segment": "people", "parameter": map[string]string{}},
	} {
		actual, err = parsed.Expand(values)
		require.NoError(t, err)
		assert.Equal(t, "/people/something", actual)
	}
}

func TestTemplate_Expand_Unresolvable(t *testing.T) {
	keys := map[string]string{"semi": ";"}

	for _, pattern := range []string{"{var}", "{+var}", "{#var}"} {
		parsed := MustParse(pattern)
		_, err := parsed.Expand(Values{"var": keys})
		var unresolvable *UnresolvableVariableError
		require.ErrorAs(t, err, &unresolvable, pattern)
		assert.Equal(t, "var", unresolvable.Name)
	}

	// With a rendered sibling the group still renders.
	parsed := MustParse("{x,var}")
	actual, err := parsed.Expand(Values{"x": "1024", "var": keys})
	require.NoError(t, err)
	assert.Equal(t, "1024,semi,%3B", actual)

	// Unsupported value kinds are a type mismatch regardless of operator.
	_, err = MustParse("{?var}").Expand(Values{"var": 42})
	var unresolvable *UnresolvableVariableError
	assert.ErrorAs(t, err, &unresolvable)
}

func TestTemplate_With(t *testing.T) {
	base := MustParse("/{segment}/something")

	extended := base.With(MustNewVariable("parameter", REQUEST_PARAM))
	assert.Equal(t, "/{segment}/something{?parameter}", extended.String())
	assert.Equal(t, "/{segment}/something", base.String())

	// Operator-compatible variables merge into one group.
	merged := extended.With(MustNewVariable("page", REQUEST_PARAM)).With(MustNewVariable("tags", LIST))
	assert.Equal(t, "/{segment}/something{?parameter,page,tags*}", merged.String())

	// Incompatible operators start a new group; expansion is unaffected.
	continued := extended.With(MustNewVariable("page", REQUEST_PARAM_CONTINUED))
	assert.Equal(t, "/{segment}/something{?parameter}{&page}", continued.String())
	actual, err := continued.Expand(Values{"segment": "people", "parameter": "42", "page": "1"})
	require.NoError(t, err)
	assert.Equal(t, "/people/something?parameter=42&page=1", actual)

	// A duplicate name leaves the template as-is.
	assert.Equal(t, extended, extended.With(MustNewVariable("parameter", REQUEST_PARAM)))

	composed := New().
		With(MustNewVariable("id", PATH_SEGMENT)).
		With(MustNewVariable("version", NAME))
	assert.Equal(t, "{/id}{;version}", composed.String())
}

const literalChars = "abcdefghijklmnopqrstuvwxyz0123456789-._~/:ABC"

func patternGenerator() *rapid.Generator[string] {
	name := rapid.StringMatching(`[a-zA-Z0-9_]{1,8}`)
	variable := rapid.Custom(func(t *rapid.T) string {
		n := name.Draw(t, "name")
		if rapid.Bool().Draw(t, "explode") {
			return n + "*"
		}
		return n
	})
	expr := rapid.Custom(func(t *rapid.T) string {
		op := rapid.SampledFrom([]string{"", "+", "#", ".", "/", ";", "?", "&"}).Draw(t, "op")
		vars := rapid.SliceOfN(variable, 1, 3).Draw(t, "vars")
		return "{" + op + strings.Join(vars, ",") + "}"
	})
	lit := rapid.Custom(func(t *rapid.T) string {
		runes := rapid.SliceOfN(rapid.SampledFrom([]rune(literalChars)), 0, 8).Draw(t, "runes")
		return string(runes)
	})
	return rapid.Custom(func(t *rapid.T) string {
		var sb strings.Builder
		n := rapid.IntRange(0, 4).Draw(t, "segments")
		for i := 0; i < n; i++ {
			sb.WriteString(lit.Draw(t, "literal"))
			sb.WriteString(expr.Draw(t, "expression"))
		}
		sb.WriteString(lit.Draw(t, "trailing"))
		return sb.String()
	})
}

func TestTemplate_RoundTripProperty(t *testing.T) {
	patterns := patternGenerator()
	rapid.Check(t, func(t *rapid.T) {
		pattern := patterns.Draw(t, "pattern")
		parsed, err := Parse(pattern)
		if err != nil {
			t.Fatalf("failed to parse generated pattern %q: %v", pattern, err)
		}
		if actual := parsed.String(); actual != pattern {
			t.Fatalf("round trip of %q produced %q", pattern, actual)
		}
	})
}

func TestTemplate_ExpandDeterminismProperty(t *testing.T) {
	patterns := patternGenerator()
	scalar := rapid.StringMatching(`[a-zA-Z0-9 %/?#]{0,8}`)
	rapid.Check(t, func(t *rapid.T) {
		parsed, err := Parse(patterns.Draw(t, "pattern"))
		if err != nil {
			t.Fatalf("failed to parse generated pattern: %v", err)
		}

		values := Values{}
		for _, name := range parsed.VariableNames() {
			switch rapid.IntRange(0, 3).Draw(t, "shape") {
			case 0:
				// absent
			case 1:
				values[name] = scalar.Draw(t, "scalar")
			case 2:
				values[name] = rapid.SliceOfN(scalar, 0, 3).Draw(t, "seq")
			case 3:
				values[name] = rapid.MapOfN(rapid.StringMatching(`[a-z]{1,4}`), scalar, 0, 3).Draw(t, "map")
			}
		}

		first, firstErr := parsed.Expand(values)
		second, secondErr := parsed.Expand(values)
		if first != second || (firstErr == nil) != (secondErr == nil) {
			t.Fatalf("expansion is not deterministic: %q/%v vs %q/%v", first, firstErr, second, secondErr)
		}
	})
}
