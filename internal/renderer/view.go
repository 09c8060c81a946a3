package renderer

import (
	"github.com/gdamore/tcell/v2"
)

// View paints frames on a tcell screen: the content area, a toolbar row
// at the top or bottom and a status row at the bottom.
type View struct {
	screen     tcell.Screen
	toolbarTop bool
	scroll     int
}

// NewView creates a view on an initialized screen.
func NewView(s tcell.Screen, toolbarTop bool) *View {
	return &View{screen: s, toolbarTop: toolbarTop}
}

// SetToolbarTop moves the toolbar.
func (v *View) SetToolbarTop(top bool) { v.toolbarTop = top }

// ContentSize returns the size of the content area.
func (v *View) ContentSize() (width, height int) {
	w, h := v.screen.Size()
	return w, max(h-2, 0)
}

// Draw paints the frame, toolbar and status line and shows the result.
func (v *View) Draw(f Frame, toolbar Row, status string) {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	_, ch := v.ContentSize()

	top := 0
	toolbarY, statusY := 0, h-1
	if v.toolbarTop {
		top = 1
	} else {
		toolbarY = h - 2
	}

	if f.HasCaret {
		if f.Caret.Y < v.scroll {
			v.scroll = f.Caret.Y
		}
		if ch > 0 && f.Caret.Y >= v.scroll+ch {
			v.scroll = f.Caret.Y - ch + 1
		}
	}
	v.scroll = min(v.scroll, max(len(f.Rows)-1, 0))

	for y := 0; y < ch && v.scroll+y < len(f.Rows); y++ {
		v.drawRow(top+y, w, f.Rows[v.scroll+y])
	}
	if h >= 2 {
		v.drawRow(toolbarY, w, toolbar)
		v.drawRow(statusY, w, Cells(status, AttrDim))
	}

	if f.HasCaret && f.Caret.Y >= v.scroll && f.Caret.Y < v.scroll+ch {
		s.ShowCursor(min(f.Caret.X, max(w-1, 0)), top+f.Caret.Y-v.scroll)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (v *View) drawRow(y, width int, row Row) {
	x := 0
	for _, c := range row {
		if x+c.Width > width {
			return
		}
		runes := []rune(c.Text)
		v.screen.SetContent(x, y, runes[0], runes[1:], convertStyle(c.Style))
		x += c.Width
	}
}

// convertStyle converts attributes to a tcell.Style.
func convertStyle(a Attribute) tcell.Style {
	style := tcell.StyleDefault
	if a.Has(AttrBold) {
		style = style.Bold(true)
	}
	if a.Has(AttrDim) {
		style = style.Dim(true)
	}
	if a.Has(AttrItalic) {
		style = style.Italic(true)
	}
	if a.Has(AttrUnderline) {
		style = style.Underline(true)
	}
	if a.Has(AttrReverse) {
		style = style.Reverse(true)
	}
	if a.Has(AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}
	return style
}
