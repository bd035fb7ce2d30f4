// Package tui は tcell の画面にゲームを描き、キー入力でセッションを進めます
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"termsweeper/session"
	"termsweeper/viewmodel"
)

// NewScreen は端末の画面を初期化します
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	return screen, nil
}

// Game は画面とセッションをつなぎます
type Game struct {
	screen  tcell.Screen
	session *session.Session
	theme   viewmodel.Theme
}

func NewGame(screen tcell.Screen, s *session.Session, theme viewmodel.Theme) *Game {
	return &Game{screen: screen, session: s, theme: theme}
}

// Run はゲームが終わるまでターンを繰り返し、最後の状態を返します
// 1ターン: 描画 → 勝利判定 → キーを1つ読む → 操作を実行
func (g *Game) Run() session.Status {
	for {
		g.redraw()

		if g.session.CheckWin() {
			g.showEnd()
			return session.Won
		}

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// 画面が閉じられた
			return g.session.Apply(session.QuitGame)
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			action := ActionFor(ev)
			if action == session.None {
				continue
			}
			switch status := g.session.Apply(action); status {
			case session.Won, session.Lost:
				g.showEnd()
				return status
			case session.Quit:
				return status
			}
		}
	}
}

func (g *Game) redraw() {
	draw(g.screen, viewmodel.NewFrame(g.session, g.theme))
}

// showEnd は終了画面を描いて、キーが押されるまで待ちます
func (g *Game) showEnd() {
	g.redraw()
	log.Debug().Str("session", g.session.ID).Msg("waiting for key on end screen")
	for {
		switch g.screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			g.screen.Sync()
			g.redraw()
		}
	}
}
