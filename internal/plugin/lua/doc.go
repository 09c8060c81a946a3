// Package lua runs editor features written in Lua.
//
// A feature script returns a table describing the feature:
//
//	return {
//	    name = "underline",
//	    shortcut = "u",
//	    description = "toggle underline",
//	    exec = function() rte.toggle_inline("u") end,
//	    active = function() return rte.has_format("u") end,
//	}
//
// name and exec are required. active and disabled are optional
// predicates, enter(tag) may claim the Enter key for the caret's
// container or one of its ancestors.
//
// Scripts see the base, table, string and math libraries plus the rte
// module; they cannot load code or touch the file system. Each call into
// Lua is bounded by an execution timeout.
//
// # The rte module
//
//	rte.has_format(tag [, class])    -> boolean
//	rte.toggle_inline(tag [, class])
//	rte.apply_inline(tag [, class])
//	rte.remove_inline(tag [, class])
//	rte.block_style(property, value) -> boolean
//	rte.quote(delta)                 raise (delta > 0) or lower the quote level
//	rte.list(tag)                    wrap the selected lines in an ol or ul
//	rte.unlist()
//	rte.link()                       link the selection, href from its text
//	rte.insert_text(text)
//	rte.focused()                    -> boolean
//	rte.log(message)
package lua
