package restfu

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/ccbrown/rest-fu/uritemplate"
)

// ErrInvalidHref is returned when a link is constructed with an empty href.
var ErrInvalidHref = errors.New("link href must not be empty")

// A Link combines an href, which may still contain URI template expressions,
// with a relation and the optional RFC 8288 target attributes. Links are
// immutable value objects: the withers return a new link with one field
// replaced and never modify the receiver, and links compare with ==.
type Link struct {
	href        string
	rel         LinkRelation
	hreflang    string
	media       string
	title       string
	mediaType   string
	deprecation string
	profile     string
	name        string
	templated   bool
}

// NewLink returns a link to the given href with the "self" relation.
func NewLink(href string) (Link, error) {
	return NewLinkWithRel(href, SelfRel)
}

// NewLinkWithRel returns a link to the given href with the given relation. The
// href may be a plain URI or a URI template; whether it is templated is
// determined once here and carried through all derived links.
func NewLinkWithRel(href string, rel LinkRelation) (Link, error) {
	if href == "" {
		return Link{}, ErrInvalidHref
	}
	return Link{
		href:      href,
		rel:       rel,
		templated: hrefIsTemplated(href),
	}, nil
}

// MustNewLink is NewLink, but panics on an empty href. Intended for hrefs
// known at compile time.
func MustNewLink(href string) Link {
	l, err := NewLink(href)
	if err != nil {
		panic(err)
	}
	return l
}

// hrefIsTemplated reports whether the href parses as a URI template with at
// least one expression. An href that does not parse at all is treated as a
// plain, non-templated href.
func hrefIsTemplated(href string) bool {
	t, err := uritemplate.Parse(href)
	return err == nil && t.HasVariables()
}

func (l Link) Href() string        { return l.href }
func (l Link) Rel() LinkRelation   { return l.rel }
func (l Link) Hreflang() string    { return l.hreflang }
func (l Link) Media() string       { return l.media }
func (l Link) Title() string       { return l.title }
func (l Link) Type() string        { return l.mediaType }
func (l Link) Deprecation() string { return l.deprecation }
func (l Link) Profile() string     { return l.profile }
func (l Link) Name() string        { return l.name }

// Templated reports whether the href contains at least one URI template
// expression.
func (l Link) Templated() bool { return l.templated }

func (l Link) WithRel(rel LinkRelation) Link {
	l.rel = rel
	return l
}

func (l Link) WithHreflang(hreflang string) Link {
	l.hreflang = hreflang
	return l
}

func (l Link) WithMedia(media string) Link {
	l.media = media
	return l
}

func (l Link) WithTitle(title string) Link {
	l.title = title
	return l
}

func (l Link) WithType(mediaType string) Link {
	l.mediaType = mediaType
	return l
}

func (l Link) WithDeprecation(deprecation string) Link {
	l.deprecation = deprecation
	return l
}

func (l Link) WithProfile(profile string) Link {
	l.profile = profile
	return l
}

func (l Link) WithName(name string) Link {
	l.name = name
	return l
}

// VariableNames returns the names of the href's template variables in template
// order, or nil if the link is not templated.
func (l Link) VariableNames() []string {
	if !l.templated {
		return nil
	}
	t, err := uritemplate.Parse(l.href)
	if err != nil {
		return nil
	}
	return t.VariableNames()
}

// Expand returns a link whose href is the result of expanding the receiver's
// href against the given values. All other fields are copied. A link that is
// not templated is returned unchanged.
func (l Link) Expand(values uritemplate.Values) (Link, error) {
	if !l.templated {
		return l, nil
	}
	t, err := uritemplate.Parse(l.href)
	if err != nil {
		return Link{}, errors.Wrapf(err, "error parsing link href %q", l.href)
	}
	expanded, err := t.Expand(values)
	if err != nil {
		return Link{}, errors.Wrapf(err, "error expanding link href %q", l.href)
	}
	l.href = expanded
	l.templated = hrefIsTemplated(expanded)
	return l, nil
}

// Header renders the link as an RFC 8288 link-value suitable for use in a
// "Link" header, e.g. `</things/4>; rel="item"; title="A thing"`.
func (l Link) Header() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(l.href)
	sb.WriteByte('>')
	writeHeaderParam(&sb, "rel", l.rel.String())
	writeHeaderParam(&sb, "hreflang", l.hreflang)
	writeHeaderParam(&sb, "media", l.media)
	writeHeaderParam(&sb, "title", l.title)
	writeHeaderParam(&sb, "type", l.mediaType)
	writeHeaderParam(&sb, "deprecation", l.deprecation)
	writeHeaderParam(&sb, "profile", l.profile)
	writeHeaderParam(&sb, "name", l.name)
	return sb.String()
}

func writeHeaderParam(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	sb.WriteString("; ")
	sb.WriteString(key)
	sb.WriteString(`="`)
	sb.WriteString(strings.ReplaceAll(value, `"`, `\"`))
	sb.WriteByte('"')
}

// ParseLinkHeader parses an RFC 8288 "Link" header value, which may contain
// multiple comma-separated link-values, into links. Parameters without a
// corresponding Link attribute are ignored.
func ParseLinkHeader(value string) ([]Link, error) {
	var links []Link
	i := 0
	for {
		for i < len(value) && (value[i] == ' ' || value[i] == '\t' || value[i] == ',') {
			i++
		}
		if i >= len(value) {
			break
		}
		if value[i] != '<' {
			return nil, errors.Errorf("malformed link header: expected '<' at offset %d", i)
		}
		end := strings.IndexByte(value[i:], '>')
		if end < 0 {
			return nil, errors.Errorf("malformed link header: unclosed uri reference at offset %d", i)
		}
		href := value[i+1 : i+end]
		i += end + 1

		link, err := NewLink(href)
		if err != nil {
			return nil, errors.Wrap(err, "malformed link header")
		}

		for {
			for i < len(value) && (value[i] == ' ' || value[i] == '\t') {
				i++
			}
			if i >= len(value) || value[i] != ';' {
				break
			}
			i++
			key, val, next, err := parseHeaderParam(value, i)
			if err != nil {
				return nil, err
			}
			i = next
			link = link.withHeaderParam(key, val)
		}

		links = append(links, link)
	}
	return links, nil
}

func parseHeaderParam(value string, i int) (key, val string, next int, err error) {
	for i < len(value) && (value[i] == ' ' || value[i] == '\t') {
		i++
	}
	eq := strings.IndexByte(value[i:], '=')
	if eq < 0 {
		return "", "", 0, errors.Errorf("malformed link header: parameter without value at offset %d", i)
	}
	key = strings.TrimSpace(value[i : i+eq])
	i += eq + 1
	if i < len(value) && value[i] == '"' {
		i++
		var sb strings.Builder
		for ; i < len(value) && value[i] != '"'; i++ {
			if value[i] == '\\' && i+1 < len(value) {
				i++
			}
			sb.WriteByte(value[i])
		}
		if i >= len(value) {
			return "", "", 0, errors.Errorf("malformed link header: unterminated quoted string")
		}
		return key, sb.String(), i + 1, nil
	}
	end := strings.IndexAny(value[i:], ";,")
	if end < 0 {
		end = len(value) - i
	}
	return key, strings.TrimSpace(value[i : i+end]), i + end, nil
}

func (l Link) withHeaderParam(key, value string) Link {
	switch strings.ToLower(key) {
	case "rel":
		return l.WithRel(Rel(value))
	case "hreflang":
		return l.WithHreflang(value)
	case "media":
		return l.WithMedia(value)
	case "title":
		return l.WithTitle(value)
	case "type":
		return l.WithType(value)
	case "deprecation":
		return l.WithDeprecation(value)
	case "profile":
		return l.WithProfile(value)
	case "name":
		return l.WithName(value)
	default:
		return l
	}
}
