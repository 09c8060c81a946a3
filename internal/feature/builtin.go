package feature

import (
	"fmt"
	"strings"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/format"
	"github.com/dshills/richedit/internal/surface"
)

// Built-in feature names.
const (
	NameBold          = "bold"
	NameItalic        = "italic"
	NameStrike        = "strike"
	NameSpoiler       = "spoiler"
	NameOrderedList   = "ordered-list"
	NameUnorderedList = "unordered-list"
	NameBlockquote    = "blockquote"
)

// DefaultSpoilerClass is the class carried by spoiler spans.
const DefaultSpoilerClass = "coral-rte-spoiler"

// DefaultNames lists the built-in features in toolbar order.
var DefaultNames = []string{
	NameBold, NameItalic, NameBlockquote, NameStrike,
	NameSpoiler, NameUnorderedList, NameOrderedList,
}

// HasFormat is a predicate reporting whether an element with tag and
// class intersects the selection.
func HasFormat(tag, class string) Predicate {
	return func(h Host) bool {
		return h.Formatter().HasFormat(tag, class)
	}
}

// BlockStyle is a predicate reporting whether any selected block already
// renders property as value. Formatting features use it to report
// themselves disabled when the effect comes from a block they cannot
// remove.
func BlockStyle(property, value string) Predicate {
	return func(h Host) bool {
		found := false
		h.Formatter().ForEachBlock(func(b *dom.Node) bool {
			if h.Surface().ComputedStyle(b, property) == value {
				found = true
			}
			return found
		})
		return found
	}
}

// InlineToggle returns a command that removes the tag/class wrapper when
// present and applies it otherwise.
func InlineToggle(tag, class string) Command {
	return func(h Host) error {
		f := h.Formatter()
		if f.HasFormat(tag, class) {
			f.RemoveInline(tag, class)
			return nil
		}
		var attrs []dom.Attr
		if class != "" {
			attrs = append(attrs, dom.Attr{Key: "class", Val: class})
		}
		return f.ApplyInline(tag, attrs...)
	}
}

// Bold toggles b elements. Shortcut: CtrlKey+B.
func Bold() *Toggle {
	return NewToggle(NameBold, InlineToggle(dom.TagB, ""),
		WithActive(HasFormat(dom.TagB, "")),
		WithShortcut("b", "toggle bold"),
	)
}

// Italic toggles i elements. It is disabled inside blocks rendered italic.
func Italic() *Toggle {
	return NewToggle(NameItalic, InlineToggle(dom.TagI, ""),
		WithActive(HasFormat(dom.TagI, "")),
		WithDisabled(BlockStyle(surface.PropFontStyle, "italic")),
		WithShortcut("i", "toggle italic"),
	)
}

// Strike toggles s elements. It is disabled inside blocks rendered with a
// line through.
func Strike() *Toggle {
	return NewToggle(NameStrike, InlineToggle(dom.TagS, ""),
		WithActive(HasFormat(dom.TagS, "")),
		WithDisabled(BlockStyle(surface.PropTextDecoration, "line-through")),
		WithShortcut("s", "toggle strikethrough"),
	)
}

// Spoiler toggles span elements carrying class.
func Spoiler(class string) *Toggle {
	if class == "" {
		class = DefaultSpoilerClass
	}
	return NewToggle(NameSpoiler, InlineToggle(dom.TagSpan, class),
		WithActive(HasFormat(dom.TagSpan, class)),
	)
}

// Blockquote raises or lowers the quote level of the selected lines.
func Blockquote() *Toggle {
	return NewToggle(NameBlockquote, func(h Host) error {
		f := h.Formatter()
		if f.HasFormat(dom.TagBlockquote, "") {
			f.DecreaseQuoteLevel()
		} else {
			f.IncreaseQuoteLevel()
		}
		return nil
	}, WithActive(HasFormat(dom.TagBlockquote, "")))
}

// OrderedList toggles an ol around the selected lines.
func OrderedList() *Toggle {
	return listToggle(NameOrderedList, dom.TagOL)
}

// UnorderedList toggles a ul around the selected lines.
func UnorderedList() *Toggle {
	return listToggle(NameUnorderedList, dom.TagUL)
}

func listToggle(name, tag string) *Toggle {
	return NewToggle(name, func(h Host) error {
		f := h.Formatter()
		if f.HasFormat(tag, "") {
			f.RemoveList()
		} else {
			f.MakeList(tag)
		}
		return nil
	},
		WithActive(HasFormat(tag, "")),
		WithEnter(listEnter(tag)),
	)
}

// listEnter splits the list item at the caret, or leaves the list when the
// item is empty.
func listEnter(tag string) func(h Host, n *dom.Node) bool {
	return func(h Host, n *dom.Node) bool {
		if !n.Is(dom.TagLI) || !n.Parent().Is(tag) {
			return false
		}
		f := h.Formatter()
		if format.IsEmptyBlock(n) {
			return f.ExitList(n)
		}
		return f.SplitBlock(n) != nil
	}
}

// Options configures built-in features created by name.
type Options struct {
	SpoilerClass string
}

// New creates the built-in feature called name.
func New(name string, opts Options) (Feature, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameBold:
		return Bold(), nil
	case NameItalic:
		return Italic(), nil
	case NameStrike:
		return Strike(), nil
	case NameSpoiler:
		return Spoiler(opts.SpoilerClass), nil
	case NameOrderedList:
		return OrderedList(), nil
	case NameUnorderedList:
		return UnorderedList(), nil
	case NameBlockquote:
		return Blockquote(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
}
