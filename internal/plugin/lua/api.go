package lua

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/feature"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the global holding the editor API.
const ModuleName = "rte"

// api exposes the host of the running callback to Lua.
type api struct {
	host func() feature.Host
}

func (a *api) funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"has_format":    a.hasFormat,
		"toggle_inline": a.toggleInline,
		"apply_inline":  a.applyInline,
		"remove_inline": a.removeInline,
		"block_style":   a.blockStyle,
		"quote":         a.quote,
		"list":          a.list,
		"unlist":        a.unlist,
		"link":          a.link,
		"insert_text":   a.insertText,
		"focused":       a.focused,
		"log":           a.log,
	}
}

// mustHost returns the current host or raises a Lua error.
func (a *api) mustHost(L *lua.LState) feature.Host {
	h := a.host()
	if h == nil {
		L.RaiseError("%s", ErrNoHost.Error())
	}
	return h
}

func (a *api) hasFormat(L *lua.LState) int {
	h := a.mustHost(L)
	L.Push(lua.LBool(h.Formatter().HasFormat(L.CheckString(1), L.OptString(2, ""))))
	return 1
}

func (a *api) toggleInline(L *lua.LState) int {
	h := a.mustHost(L)
	if err := feature.InlineToggle(L.CheckString(1), L.OptString(2, ""))(h); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (a *api) applyInline(L *lua.LState) int {
	h := a.mustHost(L)
	tag, class := L.CheckString(1), L.OptString(2, "")
	var attrs []dom.Attr
	if class != "" {
		attrs = append(attrs, dom.Attr{Key: "class", Val: class})
	}
	if err := h.Formatter().ApplyInline(tag, attrs...); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (a *api) removeInline(L *lua.LState) int {
	h := a.mustHost(L)
	h.Formatter().RemoveInline(L.CheckString(1), L.OptString(2, ""))
	return 0
}

func (a *api) blockStyle(L *lua.LState) int {
	h := a.mustHost(L)
	L.Push(lua.LBool(feature.BlockStyle(L.CheckString(1), L.CheckString(2))(h)))
	return 1
}

func (a *api) quote(L *lua.LState) int {
	h := a.mustHost(L)
	f := h.Formatter()
	if L.OptInt(1, 1) > 0 {
		f.IncreaseQuoteLevel()
	} else {
		f.DecreaseQuoteLevel()
	}
	return 0
}

func (a *api) list(L *lua.LState) int {
	h := a.mustHost(L)
	tag := L.CheckString(1)
	if tag != dom.TagOL && tag != dom.TagUL {
		L.ArgError(1, "expected ol or ul")
	}
	h.Formatter().MakeList(tag)
	return 0
}

func (a *api) unlist(L *lua.LState) int {
	a.mustHost(L).Formatter().RemoveList()
	return 0
}

// link wraps the selection in a link whose href follows its text.
func (a *api) link(L *lua.LState) int {
	h := a.mustHost(L)
	if err := h.Formatter().ApplyInline(dom.TagA); err != nil {
		L.RaiseError("%s", err.Error())
	}
	if n := h.Selection().FindIntersecting(dom.Tag(dom.TagA), h.Root()); n != nil {
		dom.SyncLinkHref(n)
	}
	return 0
}

func (a *api) insertText(L *lua.LState) int {
	h := a.mustHost(L)
	if err := h.Selection().InsertText(L.CheckString(1)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (a *api) focused(L *lua.LState) int {
	L.Push(lua.LBool(a.mustHost(L).Focused()))
	return 1
}

func (a *api) log(L *lua.LState) int {
	a.mustHost(L).Logger().Info("%s", L.CheckString(1))
	return 0
}
