package surface

import (
	"strings"
	"sync"

	"github.com/dshills/richedit/internal/engine/dom"
)

// Surface is the host surface contract.
type Surface interface {
	dom.Layout

	// ComputedStyle returns the value of a style property as rendered for
	// n, or "" when the property has no value.
	ComputedStyle(n *dom.Node, property string) string
}

// Property names understood by Stylesheet.
const (
	PropDisplay        = "display"
	PropFontStyle      = "font-style"
	PropFontWeight     = "font-weight"
	PropTextDecoration = "text-decoration"
)

// inherited lists properties whose value is taken from the nearest
// ancestor that sets them. text-decoration is not inherited in CSS but its
// line is drawn through descendants, which is what callers ask about.
var inherited = map[string]bool{
	PropFontStyle:      true,
	PropFontWeight:     true,
	PropTextDecoration: true,
	"color":            true,
}

func defaultRules() map[string]map[string]string {
	return map[string]map[string]string{
		dom.TagB:      {PropFontWeight: "bold"},
		dom.TagStrong: {PropFontWeight: "bold"},
		dom.TagI:      {PropFontStyle: "italic"},
		dom.TagEm:     {PropFontStyle: "italic"},
		dom.TagS:      {PropTextDecoration: "line-through"},
		"strike":      {PropTextDecoration: "line-through"},
		"del":         {PropTextDecoration: "line-through"},
		"u":           {PropTextDecoration: "underline"},
		dom.TagA:      {PropTextDecoration: "underline"},
	}
}

// Stylesheet resolves styles from tag rules and inline style attributes.
type Stylesheet struct {
	mu    sync.RWMutex
	rules map[string]map[string]string
}

// NewStylesheet returns a stylesheet with the default rules.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{rules: defaultRules()}
}

// Set overrides property for tag. An empty value removes the rule.
func (s *Stylesheet) Set(tag, property, value string) {
	tag, property = strings.ToLower(tag), strings.ToLower(property)
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.rules[tag], property)
		return
	}
	if s.rules[tag] == nil {
		s.rules[tag] = make(map[string]string)
	}
	s.rules[tag][property] = value
}

// Apply sets every rule in styles, keyed by tag then property.
func (s *Stylesheet) Apply(styles map[string]map[string]string) {
	for tag, props := range styles {
		for prop, val := range props {
			s.Set(tag, prop, val)
		}
	}
}

// Display implements dom.Layout.
func (s *Stylesheet) Display(n *dom.Node) string {
	if v := s.own(n, PropDisplay); v != "" {
		return v
	}
	return dom.DefaultDisplay(n.Tag())
}

// ComputedStyle implements Surface. Text nodes resolve through their
// parent.
func (s *Stylesheet) ComputedStyle(n *dom.Node, property string) string {
	property = strings.ToLower(property)
	if property == PropDisplay {
		if n.IsText() {
			return "inline"
		}
		return s.Display(n)
	}
	if n.IsText() {
		n = n.Parent()
	}
	for ; n != nil; n = n.Parent() {
		if v := s.own(n, property); v != "" {
			return v
		}
		if !inherited[property] {
			return ""
		}
	}
	return ""
}

// own returns the value set directly on n, inline style first.
func (s *Stylesheet) own(n *dom.Node, property string) string {
	if style, ok := n.Attr("style"); ok {
		if v := InlineStyle(style, property); v != "" {
			return v
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules[n.Tag()][property]
}

// InlineStyle returns the value of property in a style attribute such as
// "font-style: italic; color: red".
func InlineStyle(style, property string) string {
	for _, decl := range strings.Split(style, ";") {
		name, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), property) {
			return strings.TrimSpace(val)
		}
	}
	return ""
}
