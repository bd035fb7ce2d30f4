// Package session はカーソル、勝ち負けの判定、1ターン分の操作を管理します
package session

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"termsweeper/game"
	"termsweeper/solver"
)

const (
	msgWin  = "You win. hit key"
	msgLose = "You lose. hit key"
)

// Status はゲームの状態です
type Status int

const (
	InProgress Status = iota
	Won
	Lost
	Quit
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	default:
		return "in_progress"
	}
}

// Terminal は Won / Lost / Quit のとき true を返します
func (s Status) Terminal() bool {
	return s != InProgress
}

// ExitCode はプロセスの終了コードです。勝ち 0、負け 1、中断 2
func (s Status) ExitCode() int {
	switch s {
	case Won:
		return 0
	case Lost:
		return 1
	default:
		return 2
	}
}

// Action はプレイヤーの1回の入力を表します
type Action int

const (
	None Action = iota
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	ToggleMark
	Reveal
	Hint
	QuitGame
)

// Session は1回分のゲームの状態を持ちます
type Session struct {
	ID      string
	board   *game.Board
	cursor  game.Point
	status  Status
	message string
	rng     *rand.Rand
}

// New は盤面の中央にカーソルを置いてゲームを開始します
// rng はヒントのランダム手に使います（nil 可）
func New(board *game.Board, rng *rand.Rand) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		board:  board,
		cursor: game.Point{X: board.Width() / 2, Y: board.Height() / 2},
		rng:    rng,
	}
	log.Info().
		Str("session", s.ID).
		Int("width", board.Width()).
		Int("height", board.Height()).
		Int("mines", board.MineCount()).
		Msg("game started")
	log.Debug().Str("session", s.ID).Msg("board\n" + board.DebugString())
	return s
}

func (s *Session) Board() *game.Board { return s.board }
func (s *Session) Cursor() game.Point { return s.cursor }
func (s *Session) Status() Status     { return s.status }
func (s *Session) Message() string    { return s.message }

// CheckWin は勝利条件を満たしていれば Won に遷移します
// ターンの最初、入力を読む前に呼びます
func (s *Session) CheckWin() bool {
	if s.status != InProgress || !s.board.CheckClear() {
		return false
	}
	s.finish(Won)
	return true
}

// Apply は1つの操作を実行し、その後の状態を返します
// 終了状態では何もしません
func (s *Session) Apply(a Action) Status {
	if s.status.Terminal() {
		return s.status
	}
	s.message = ""

	switch a {
	case MoveLeft:
		s.move(-1, 0)
	case MoveRight:
		s.move(1, 0)
	case MoveUp:
		s.move(0, -1)
	case MoveDown:
		s.move(0, 1)
	case ToggleMark:
		s.board.ToggleMark(s.cursor.X, s.cursor.Y)
	case Reveal:
		s.reveal()
	case Hint:
		s.hint()
	case QuitGame:
		s.finish(Quit)
	}
	return s.status
}

// move はカーソルを動かします。端では止まります（反対側には回り込みません）
func (s *Session) move(dx, dy int) {
	x := clamp(s.cursor.X+dx, 0, s.board.Width()-1)
	y := clamp(s.cursor.Y+dy, 0, s.board.Height()-1)
	s.cursor = game.Point{X: x, Y: y}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Session) reveal() {
	x, y := s.cursor.X, s.cursor.Y
	cell := s.board.Cell(x, y)
	// 開いているマスと印のあるマスは開けない
	if cell.IsRevealed || cell.Mark != game.MarkNone {
		return
	}

	if !s.board.Open(x, y) {
		log.Info().Str("session", s.ID).Int("x", x).Int("y", y).Msg("mine opened")
		s.finish(Lost)
		return
	}
	s.CheckWin()
}

func (s *Session) hint() {
	move := solver.New(s.board, s.rng).NextMove()
	if move == nil {
		s.message = "hint: no move"
		return
	}
	s.cursor = game.Point{X: move.X, Y: move.Y}

	switch {
	case move.Type == solver.MoveFlag:
		s.message = "hint: mine here"
	case !move.IsGuess:
		s.message = "hint: safe"
	default:
		s.message = fmt.Sprintf("hint: guess, %d%% safe", int(move.Confidence*100))
	}
	log.Debug().
		Str("session", s.ID).
		Str("strategy", move.Strategy).
		Stringer("type", move.Type).
		Int("x", move.X).
		Int("y", move.Y).
		Float64("confidence", move.Confidence).
		Msg("hint")
}

// Step はソルバーの手を1つ実行します（自動プレイ用）
// 打つ手がなければ nil を返します
func (s *Session) Step() (*solver.Move, Status) {
	if s.status.Terminal() {
		return nil, s.status
	}
	move := solver.New(s.board, s.rng).NextMove()
	if move == nil {
		return nil, s.status
	}

	s.cursor = game.Point{X: move.X, Y: move.Y}
	if move.Type == solver.MoveFlag {
		return move, s.Apply(ToggleMark)
	}
	return move, s.Apply(Reveal)
}

// finish は終了状態に遷移し、終了画面用に盤面を開けます
func (s *Session) finish(status Status) {
	s.status = status
	switch status {
	case Won:
		s.board.RevealAll()
		s.message = msgWin
	case Lost:
		s.board.RevealMines()
		s.message = msgLose
	}
	log.Info().Str("session", s.ID).Stringer("status", status).Msg("game finished")
	log.Debug().Str("session", s.ID).Msg("board\n" + s.board.DebugString())
}
