// Copyright 2026 The Routeway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mask

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultPattern is the regex fragment used for placeholders that do not
// declare their own. It matches a single path segment.
const DefaultPattern = "[^/]+"

// Placeholder describes one named slot of a compiled mask.
type Placeholder struct {
	Name       string // parameter name
	Pattern    string // regex fragment constraining the value
	Default    string // default value, meaningful only when HasDefault
	HasDefault bool
	Required   bool // outside any optional group and without a default
	InHost     bool // declared in the host part of the mask
	Depth      int  // optional-group nesting depth, 0 for top level
}

// Lookup resolves an outbound value for a placeholder during rendering.
// It reports the value, whether the placeholder could be satisfied at all,
// and whether the value differs from the placeholder's default (a
// non-default value forces enclosing optional groups to be emitted).
type Lookup func(name string) (value string, ok bool, nonDefault bool)

// Option adjusts compilation. Options are applied before the pattern is
// parsed, so they may refer to any placeholder the mask declares.
type Option func(*config)

type config struct {
	patterns map[string]string
}

// WithPattern overrides the regex fragment for the named placeholder,
// taking precedence over a regex written inline in the mask.
func WithPattern(name, pattern string) Option {
	return func(c *config) {
		if c.patterns == nil {
			c.patterns = make(map[string]string)
		}
		c.patterns[name] = pattern
	}
}

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenPlaceholder
	tokenGroup
)

type token struct {
	kind     tokenKind
	text     string  // literal text
	name     string  // placeholder name
	children []token // group contents
}

// Mask is the immutable compiled form of a mask string.
type Mask struct {
	pattern       string
	hostRaw       string
	hostTokens    []token
	pathTokens    []token
	trailingSlash bool

	// pathRe is anchored over the whole relative path. Capture groups are
	// positional; groupNames maps group index to parameter name.
	pathRe     *regexp.Regexp
	groupNames []string

	// hostReTemplate still contains %tld%/%domain%/%sld% markers; they are
	// substituted per request host before matching. hostGroupNames maps the
	// host pattern's capture groups to parameter names.
	hostReTemplate string
	hostGroupNames []string

	placeholders map[string]*placeholder
	order        []string // placeholder declaration order, host first
}

// placeholder is the internal, compiled form of Placeholder.
type placeholder struct {
	Placeholder
	re *regexp.Regexp // anchored value pattern
}

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Compile parses a mask string into a Mask. It fails with *SyntaxError on
// unbalanced brackets or an invalid regex fragment, and with
// *DuplicateParameterError when a parameter name appears twice.
func Compile(pattern string, opts ...Option) (*Mask, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Mask{
		pattern:      pattern,
		placeholders: make(map[string]*placeholder),
	}

	rest := pattern
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			m.hostRaw = rest[:i]
			rest = rest[i+1:]
		} else {
			m.hostRaw = rest
			rest = ""
		}
		if m.hostRaw == "" {
			return nil, &SyntaxError{Pattern: pattern, Pos: 2, Msg: "empty host part"}
		}
	}

	if rest == "/" {
		rest = ""
	} else if strings.HasSuffix(rest, "/") {
		m.trailingSlash = true
		rest = rest[:len(rest)-1]
	}

	p := &parser{src: pattern, cfg: &cfg, mask: m}

	if m.hostRaw != "" {
		hostTokens, err := p.parse(m.hostRaw, strings.Index(pattern, m.hostRaw), true)
		if err != nil {
			return nil, err
		}
		m.hostTokens = hostTokens
	}

	pathTokens, err := p.parse(rest, strings.LastIndex(pattern, rest), false)
	if err != nil {
		return nil, err
	}
	m.pathTokens = pathTokens

	if err := m.compileRegexps(); err != nil {
		return nil, err
	}
	return m, nil
}

// MustCompile is like Compile but panics on error. It simplifies variable
// initialization for masks known to be valid.
func MustCompile(pattern string, opts ...Option) *Mask {
	m, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the original mask string.
func (m *Mask) Pattern() string { return m.pattern }

// IsAbsolute reports whether the mask carries a host part.
func (m *Mask) IsAbsolute() bool { return m.hostRaw != "" }

// Host returns the raw host part of the mask, empty for relative masks.
func (m *Mask) Host() string { return m.hostRaw }

// TrailingSlash reports whether matched and constructed paths must end
// with a slash.
func (m *Mask) TrailingSlash() bool { return m.trailingSlash }

// Placeholders returns the mask's placeholders in declaration order, host
// part first.
func (m *Mask) Placeholders() []Placeholder {
	out := make([]Placeholder, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.placeholders[name].Placeholder)
	}
	return out
}

// Placeholder returns the named placeholder, if declared.
func (m *Mask) Placeholder(name string) (Placeholder, bool) {
	ph, ok := m.placeholders[name]
	if !ok {
		return Placeholder{}, false
	}
	return ph.Placeholder, true
}

// HasPlaceholder reports whether the mask declares the named placeholder.
func (m *Mask) HasPlaceholder(name string) bool {
	_, ok := m.placeholders[name]
	return ok
}

// ValidValue reports whether value satisfies the named placeholder's
// pattern. Unknown names report false.
func (m *Mask) ValidValue(name, value string) bool {
	ph, ok := m.placeholders[name]
	if !ok {
		return false
	}
	return ph.re.MatchString(value)
}

// MatchPath matches a decoded relative path (no trailing slash) against
// the mask's path pattern. On success it returns the values of all
// placeholders that participated in the match; placeholders inside
// untaken optional groups are absent from the map.
func (m *Mask) MatchPath(path string) (map[string]string, bool) {
	idx := m.pathRe.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}
	vals := make(map[string]string, len(m.groupNames))
	for gi, name := range m.groupNames {
		lo, hi := idx[2*(gi+1)], idx[2*(gi+1)+1]
		if lo < 0 {
			continue // group did not participate
		}
		vals[name] = path[lo:hi]
	}
	return vals, true
}

// RenderPath renders the mask's path from outbound placeholder values.
// Optional groups are emitted only when a placeholder inside resolved to a
// non-default value; a group holding a non-default value that still cannot
// be fully rendered fails the whole construction.
func (m *Mask) RenderPath(lk Lookup) (string, bool) {
	text, _, ok := renderSeq(m.pathTokens, lk)
	if !ok {
		return "", false
	}
	return text, true
}

// PathParameterNames returns the names of placeholders declared in the
// path part, in declaration order.
func (m *Mask) PathParameterNames() []string {
	out := make([]string, 0, len(m.order))
	for _, name := range m.order {
		if !m.placeholders[name].InHost {
			out = append(out, name)
		}
	}
	return out
}

func renderSeq(tokens []token, lk Lookup) (string, bool, bool) {
	var sb strings.Builder
	nonDefault := false
	for _, t := range tokens {
		switch t.kind {
		case tokenLiteral:
			sb.WriteString(t.text)
		case tokenPlaceholder:
			v, ok, nd := lk(t.name)
			if !ok {
				return "", nonDefault, false
			}
			sb.WriteString(escapePath(v))
			nonDefault = nonDefault || nd
		case tokenGroup:
			text, nd, ok := renderSeq(t.children, lk)
			switch {
			case ok && nd:
				sb.WriteString(text)
				nonDefault = true
			case !ok && nd:
				// The group holds a value the caller actually supplied but
				// cannot be rendered as a whole.
				return "", true, false
			}
		}
	}
	return sb.String(), nonDefault, true
}

// escapePath percent-encodes a value for path emission, preserving slashes
// so wildcard placeholders survive a construct/match round trip.
func escapePath(s string) string {
	if s == url.PathEscape(s) {
		return s
	}
	parts := strings.Split(s, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// compileRegexps derives the anchored matching expressions.
func (m *Mask) compileRegexps() error {
	var sb strings.Builder
	sb.WriteString("^")
	var groupNames []string
	appendSeqRegexp(&sb, m.pathTokens, m.placeholders, &groupNames)
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return &SyntaxError{Pattern: m.pattern, Pos: 0, Msg: "invalid regex fragment: " + err.Error()}
	}
	m.pathRe = re
	m.groupNames = groupNames

	if m.hostRaw != "" {
		var hb strings.Builder
		hb.WriteString("^")
		var hostGroups []string
		appendSeqRegexp(&hb, m.hostTokens, m.placeholders, &hostGroups)
		hb.WriteString("$")
		m.hostReTemplate = hb.String()
		m.hostGroupNames = hostGroups

		// Validate the template with markers substituted by a host that
		// cannot itself break the expression.
		probe := strings.NewReplacer(
			markTLD, "x", markDomain, "x", markSLD, "x",
		).Replace(m.hostReTemplate)
		if _, err := regexp.Compile(probe); err != nil {
			return &SyntaxError{Pattern: m.pattern, Pos: 0, Msg: "invalid host regex fragment: " + err.Error()}
		}
	}

	// Per-placeholder anchored patterns for outbound validation.
	for _, ph := range m.placeholders {
		re, err := regexp.Compile("^(?:" + ph.Pattern + ")$")
		if err != nil {
			return &SyntaxError{Pattern: m.pattern, Pos: 0, Msg: fmt.Sprintf("invalid regex for parameter %q: %s", ph.Name, err.Error())}
		}
		ph.re = re
	}
	return nil
}

// Internal markers for the host substitutions. They use NUL bytes so no
// quoted literal can collide with them.
const (
	markTLD    = "\x00tld\x00"
	markDomain = "\x00domain\x00"
	markSLD    = "\x00sld\x00"
)

func appendSeqRegexp(sb *strings.Builder, tokens []token, phs map[string]*placeholder, groupNames *[]string) {
	for _, t := range tokens {
		switch t.kind {
		case tokenLiteral:
			sb.WriteString(quoteLiteral(t.text))
		case tokenPlaceholder:
			*groupNames = append(*groupNames, t.name)
			sb.WriteString("(")
			sb.WriteString(phs[t.name].Pattern)
			sb.WriteString(")")
		case tokenGroup:
			sb.WriteString("(?:")
			appendSeqRegexp(sb, t.children, phs, groupNames)
			sb.WriteString(")?")
		}
	}
}

// quoteLiteral quotes literal mask text for the regexp, translating the
// host substitution tokens into internal markers first so they survive
// quoting and can be expanded per host later.
func quoteLiteral(s string) string {
	s = strings.NewReplacer(
		"%tld%", markTLD,
		"%domain%", markDomain,
		"%sld%", markSLD,
	).Replace(s)
	q := regexp.QuoteMeta(s)
	// QuoteMeta leaves NUL bytes untouched, so markers pass through.
	return q
}

// parser walks one part (host or path) of a mask string.
type parser struct {
	src  string // full mask, for error reporting
	cfg  *config
	mask *Mask
}

func (p *parser) parse(part string, offset int, inHost bool) ([]token, error) {
	if offset < 0 {
		offset = 0
	}
	pos := 0
	tokens, err := p.parseSeq(part, &pos, offset, inHost, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(part) {
		// parseSeq stops early only on an unmatched closing bracket.
		return nil, &SyntaxError{Pattern: p.src, Pos: offset + pos, Msg: "unbalanced ']'"}
	}
	return tokens, nil
}

func (p *parser) parseSeq(s string, pos *int, offset int, inHost bool, depth int) ([]token, error) {
	var tokens []token
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for *pos < len(s) {
		switch c := s[*pos]; c {
		case '<':
			flushLiteral()
			tok, err := p.parsePlaceholder(s, pos, offset, inHost, depth)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case '[':
			if inHost {
				return nil, &SyntaxError{Pattern: p.src, Pos: offset + *pos, Msg: "optional group not allowed in host part"}
			}
			flushLiteral()
			start := *pos
			*pos++
			children, err := p.parseSeq(s, pos, offset, inHost, depth+1)
			if err != nil {
				return nil, err
			}
			if *pos >= len(s) || s[*pos] != ']' {
				return nil, &SyntaxError{Pattern: p.src, Pos: offset + start, Msg: "unbalanced '['"}
			}
			*pos++
			tokens = append(tokens, token{kind: tokenGroup, children: children})
		case ']':
			// At depth 0 the caller reports the unbalanced bracket.
			flushLiteral()
			return tokens, nil
		case '>':
			return nil, &SyntaxError{Pattern: p.src, Pos: offset + *pos, Msg: "unexpected '>'"}
		default:
			lit.WriteByte(c)
			*pos++
		}
	}
	flushLiteral()
	return tokens, nil
}

func (p *parser) parsePlaceholder(s string, pos *int, offset int, inHost bool, depth int) (token, error) {
	start := *pos
	end := strings.IndexByte(s[start:], '>')
	if end < 0 {
		return token{}, &SyntaxError{Pattern: p.src, Pos: offset + start, Msg: "unbalanced '<'"}
	}
	body := s[start+1 : start+end]
	*pos = start + end + 1

	name, spec := body, ""
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		name, spec = body[:i], strings.TrimSpace(body[i+1:])
	}
	if !nameRe.MatchString(name) {
		return token{}, &SyntaxError{Pattern: p.src, Pos: offset + start + 1, Msg: fmt.Sprintf("invalid parameter name %q", name)}
	}
	if _, dup := p.mask.placeholders[name]; dup {
		return token{}, &DuplicateParameterError{Pattern: p.src, Name: name}
	}

	ph := &placeholder{Placeholder: Placeholder{
		Name:    name,
		Pattern: DefaultPattern,
		InHost:  inHost,
		Depth:   depth,
	}}

	pattern, def, hasDef := splitSpec(spec)
	if pattern != "" {
		ph.Pattern = pattern
	}
	if hasDef {
		ph.Default = def
		ph.HasDefault = true
	}
	if override, ok := p.cfg.patterns[name]; ok {
		ph.Pattern = override
	}
	ph.Required = depth == 0 && !ph.HasDefault

	p.mask.placeholders[name] = ph
	p.mask.order = append(p.mask.order, name)
	return token{kind: tokenPlaceholder, name: name}, nil
}

// splitSpec separates the regex and default parts of a placeholder body.
// Either may appear alone; a token containing regex metacharacters is
// taken as the regex, anything else as the default.
func splitSpec(spec string) (pattern, def string, hasDef bool) {
	if spec == "" {
		return "", "", false
	}
	if i := lastSpace(spec); i >= 0 {
		left, right := strings.TrimSpace(spec[:i]), strings.TrimSpace(spec[i+1:])
		if !looksLikeRegex(right) {
			return left, right, true
		}
		// Both halves look like regex text: the whole spec is the regex.
		return spec, "", false
	}
	if looksLikeRegex(spec) {
		return spec, "", false
	}
	return "", spec, true
}

func lastSpace(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' || s[i] == '\t' {
			return i
		}
	}
	return -1
}

func looksLikeRegex(s string) bool {
	return strings.ContainsAny(s, `\^$.|?*+()[]{}`)
}
