package solver

import (
	"math/rand"
	"time"

	"termsweeper/game"
)

type MoveType int

const (
	MoveOpen MoveType = iota
	MoveFlag
)

func (t MoveType) String() string {
	if t == MoveFlag {
		return "flag"
	}
	return "open"
}

type Move struct {
	X, Y       int
	Type       MoveType
	IsGuess    bool    // 運任せかどうか
	Strategy   string  // "Logic", "Tank", "Tank(Prob)", "Random"
	Confidence float64 // 0.0 ~ 1.0 (その手が正しい確率)
}

// Solver は盤面を読んで次の一手を提案します
// 盤面は読むだけで、書き換えません
type Solver struct {
	Board *game.Board
	rng   *rand.Rand
}

// New は Solver を作ります。rng が nil なら現在時刻をシードにします
func New(b *game.Board, rng *rand.Rand) *Solver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Solver{Board: b, rng: rng}
}

// NextMove は次の一手を返します。打つ手がなければ nil
// プレイヤーの旗は正しいものとして扱います
func (s *Solver) NextMove() *Move {
	// 1. 論理的に「絶対に安全」
	if move := s.findSafeMove(); move != nil {
		move.IsGuess = false
		move.Strategy = "Logic"
		move.Confidence = 1.0
		return move
	}

	// 2. 論理的に「絶対に地雷」
	if move := s.findFlagMove(); move != nil {
		move.IsGuess = false
		move.Strategy = "Logic"
		move.Confidence = 1.0
		return move
	}

	// 3. バックトラック探索
	if move := NewTankSolver(s.Board).Solve(); move != nil {
		move.IsGuess = move.Confidence < 1.0
		return move
	}

	// 4. ランダム
	move := s.findRandomMove()
	if move != nil {
		move.IsGuess = true
	}
	return move
}

func (s *Solver) findSafeMove() *Move {
	b := s.Board
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cell := b.Cell(x, y)
			if !cell.IsRevealed || cell.IsMine || cell.NeighborCount == 0 {
				continue
			}
			_, flags, hidden := neighborsInfo(b, x, y)
			if flags == cell.NeighborCount && len(hidden) > 0 {
				target := hidden[0]
				return &Move{X: target.x, Y: target.y, Type: MoveOpen}
			}
		}
	}
	return nil
}

func (s *Solver) findFlagMove() *Move {
	b := s.Board
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cell := b.Cell(x, y)
			if !cell.IsRevealed || cell.IsMine || cell.NeighborCount == 0 {
				continue
			}
			totalHidden, flags, hidden := neighborsInfo(b, x, y)
			if totalHidden == cell.NeighborCount && (totalHidden-flags) > 0 {
				target := hidden[0]
				return &Move{X: target.x, Y: target.y, Type: MoveFlag}
			}
		}
	}
	return nil
}

func (s *Solver) findRandomMove() *Move {
	b := s.Board
	candidates := []pos{}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.Cell(x, y)
			if !c.IsRevealed && c.Mark != game.MarkFlag {
				candidates = append(candidates, pos{x, y})
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	choice := candidates[s.rng.Intn(len(candidates))]

	// 残りの地雷密度をそのまま安全確率の目安にする
	remaining := b.MineCount() - b.FlagCount()
	confidence := 1.0 - float64(remaining)/float64(len(candidates))
	if confidence < 0 {
		confidence = 0
	}
	return &Move{
		X: choice.x, Y: choice.y,
		Type:       MoveOpen,
		Strategy:   "Random",
		Confidence: confidence,
	}
}

type pos struct{ x, y int }

// neighborsInfo は周囲の未開封マス数（旗を含む）、旗の数、旗のない未開封マスを返します
func neighborsInfo(b *game.Board, cx, cy int) (totalHidden int, flags int, hiddenList []pos) {
	b.Neighbors(cx, cy, func(nx, ny int) {
		neighbor := b.Cell(nx, ny)
		if neighbor.IsRevealed {
			return
		}
		totalHidden++
		if neighbor.Mark == game.MarkFlag {
			flags++
		} else {
			hiddenList = append(hiddenList, pos{nx, ny})
		}
	})
	return
}
