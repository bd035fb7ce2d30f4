package tui

import (
	"github.com/gdamore/tcell/v2"

	"termsweeper/session"
)

// 矢印キー、vi のキー、テンキーの数字のどれでも動かせます
var runeBindings = map[rune]session.Action{
	'4': session.MoveLeft, 'h': session.MoveLeft,
	'6': session.MoveRight, 'l': session.MoveRight,
	'8': session.MoveUp, 'k': session.MoveUp,
	'2': session.MoveDown, 'j': session.MoveDown,
	'z': session.ToggleMark, 'm': session.ToggleMark,
	' ': session.Reveal,
	'?': session.Hint,
	'q': session.QuitGame,
}

var keyBindings = map[tcell.Key]session.Action{
	tcell.KeyLeft:   session.MoveLeft,
	tcell.KeyRight:  session.MoveRight,
	tcell.KeyUp:     session.MoveUp,
	tcell.KeyDown:   session.MoveDown,
	tcell.KeyEscape: session.QuitGame,
	tcell.KeyCtrlC:  session.QuitGame,
}

// ActionFor はキー入力を操作に変換します。割り当てのないキーは session.None
func ActionFor(ev *tcell.EventKey) session.Action {
	if ev.Key() == tcell.KeyRune {
		return runeBindings[ev.Rune()]
	}
	return keyBindings[ev.Key()]
}
