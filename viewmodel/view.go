package viewmodel

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"termsweeper/game"
	"termsweeper/session"
)

// CellColumns は1マスの表示幅（全角1文字ぶん）です
const CellColumns = 2

// Kind はマスの表示の種類です。色分けに使います
type Kind int

const (
	KindHidden Kind = iota
	KindFlag
	KindQuestion
	KindMine
	KindExplosion
	KindNumber // Count が 0 なら空白
)

// Glyph は画面上の1マスです
type Glyph struct {
	Rune    rune
	Kind    Kind
	Count   int  // KindNumber のときの周囲の地雷数
	Reverse bool // カーソル位置は反転表示
}

// Frame は1回分の描画内容です。Cells[y][x]
type Frame struct {
	Cells          [][]Glyph
	Status         string
	MinesRemaining int
}

// NewFrame はセッションの状態から画面を組み立てます
// セッションや盤面は書き換えません
func NewFrame(s *session.Session, theme Theme) Frame {
	b := s.Board()
	h := b.Height()
	w := b.Width()
	cursor := s.Cursor()
	exploded, hasExploded := b.Exploded()

	grid := make([][]Glyph, h)
	for y := 0; y < h; y++ {
		grid[y] = make([]Glyph, w)
		for x := 0; x < w; x++ {
			g := cellGlyph(b.Cell(x, y), theme)
			if hasExploded && exploded.X == x && exploded.Y == y {
				g = Glyph{Rune: theme.Explosion, Kind: KindExplosion}
			}
			if cursor.X == x && cursor.Y == y {
				g.Reverse = true
			}
			grid[y][x] = g
		}
	}

	remaining := b.MineCount() - b.FlagCount()
	status := s.Message()
	if status == "" {
		status = fmt.Sprintf("mines left %d", remaining)
	}

	return Frame{
		Cells:          grid,
		Status:         status,
		MinesRemaining: remaining,
	}
}

func cellGlyph(c game.Cell, theme Theme) Glyph {
	if !c.IsRevealed {
		switch c.Mark {
		case game.MarkFlag:
			return Glyph{Rune: theme.Flag, Kind: KindFlag}
		case game.MarkQuestion:
			return Glyph{Rune: theme.Question, Kind: KindQuestion}
		default:
			return Glyph{Rune: theme.Hidden, Kind: KindHidden}
		}
	}
	if c.IsMine {
		return Glyph{Rune: theme.Mine, Kind: KindMine}
	}
	return Glyph{Rune: theme.Digits[c.NeighborCount], Kind: KindNumber, Count: c.NeighborCount}
}

// Width は盤面の表示幅（桁数）です
func (f Frame) Width() int {
	if len(f.Cells) == 0 {
		return 0
	}
	return len(f.Cells[0]) * CellColumns
}

// StatusLine はメッセージを width 桁に切り詰め、空白で埋めて返します
func (f Frame) StatusLine(width int) string {
	return runewidth.FillRight(runewidth.Truncate(f.Status, width, ""), width)
}

// String はテスト・ログ用に画面をテキストにします（反転は表現しません）
func (f Frame) String() string {
	var sb strings.Builder
	for _, row := range f.Cells {
		for _, g := range row {
			sb.WriteRune(g.Rune)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(f.Status)
	return sb.String()
}
