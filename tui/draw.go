package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"termsweeper/viewmodel"
)

var digitColors = [9]tcell.Color{
	tcell.ColorDefault,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorDefault,
	tcell.ColorGray,
}

func glyphStyle(g viewmodel.Glyph) tcell.Style {
	style := tcell.StyleDefault
	switch g.Kind {
	case viewmodel.KindFlag, viewmodel.KindExplosion:
		style = style.Foreground(tcell.ColorRed).Bold(true)
	case viewmodel.KindMine:
		style = style.Bold(true)
	case viewmodel.KindNumber:
		style = style.Foreground(digitColors[g.Count])
	}
	return style.Reverse(g.Reverse)
}

// draw は Frame を画面に書き込みます。1マスは2桁、盤面の下に1行のメッセージ
func draw(screen tcell.Screen, frame viewmodel.Frame) {
	screen.Clear()
	for y, row := range frame.Cells {
		for x, g := range row {
			screen.SetContent(x*viewmodel.CellColumns, y, g.Rune, nil, glyphStyle(g))
		}
	}

	width, _ := screen.Size()
	if fw := frame.Width(); fw > width {
		width = fw
	}
	col := 0
	for _, r := range frame.StatusLine(width) {
		screen.SetContent(col, len(frame.Cells), r, nil, tcell.StyleDefault)
		col += runewidth.RuneWidth(r)
	}
	screen.Show()
}
