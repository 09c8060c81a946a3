// Package sanitize prepares clipboard content for insertion into the
// editor.
//
// Without a sanitizer pasted content is always plain text. A Policy lets
// rich markup through, limited to what the editor's features produce.
package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// Policy names accepted by NewPolicy.
const (
	PolicyPlain  = "plain"
	PolicyUGC    = "ugc"
	PolicyStrict = "strict"
)

// ErrUnknownPolicy is returned for an unrecognized policy name.
var ErrUnknownPolicy = errors.New("unknown paste policy")

// Sanitizer turns untrusted markup into markup safe to insert.
type Sanitizer interface {
	Sanitize(markup string) string
}

// Policy is a Sanitizer backed by a bluemonday policy.
type Policy struct {
	name string
	p    *bluemonday.Policy
}

// NewPolicy returns the sanitizer for name. PolicyPlain yields a nil
// Sanitizer, meaning pasted content is inserted as plain text.
// spoilerClass is the one class allowed on span elements.
func NewPolicy(name, spoilerClass string) (Sanitizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyPlain:
		return nil, nil
	case PolicyStrict:
		return &Policy{name: PolicyStrict, p: bluemonday.StrictPolicy()}, nil
	case PolicyUGC:
		return &Policy{name: PolicyUGC, p: editorPolicy(spoilerClass)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// editorPolicy allows the elements the editor features produce.
func editorPolicy(spoilerClass string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "s", "strike", "del", "u",
		"p", "div", "br", "blockquote", "ol", "ul", "li", "span")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(false)
	if spoilerClass != "" {
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^` + regexp.QuoteMeta(spoilerClass) + `$`)).OnElements("span")
	}
	p.AllowNoAttrs().OnElements("span")
	return p
}

// Name returns the policy name.
func (p *Policy) Name() string { return p.name }

// Sanitize implements Sanitizer.
func (p *Policy) Sanitize(markup string) string {
	return p.p.Sanitize(markup)
}

// PlainText normalizes clipboard text for insertion: NFC composition,
// CRLF and CR line endings folded to LF, and control characters other
// than newline and tab dropped.
func PlainText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
