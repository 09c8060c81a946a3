// Package renderer draws editor content on a terminal.
//
// Layout turns the content tree into rows of styled cells. Each cell
// holds one grapheme cluster and its display width as measured by
// uniseg. Inline formatting maps to terminal attributes: bold, italic,
// underline and strikethrough come from the surface's computed style,
// spoilers render in reverse video. Quotes get a bar per level and list
// items a bullet or number; long lines wrap at the view width.
//
// View paints a Frame and the toolbar onto a tcell.Screen and keeps the
// caret scrolled into view. KeyEvent converts tcell key events into the
// editor's key events.
package renderer
