package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// NewBoard は指定されたサイズと地雷数で盤面を初期化して返します
// rng が nil の場合は現在時刻をシードにします
func NewBoard(width, height, mineCount int, rng *rand.Rand) (*Board, error) {
	if err := validate(width, height, mineCount); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	board := newEmptyBoard(width, height)
	board.placeMines(mineCount, rng)
	board.calculateNeighbors()

	return board, nil
}

// NewBoardWithMines は地雷の位置を指定して盤面を作ります
func NewBoardWithMines(width, height int, mines []Point) (*Board, error) {
	if err := validate(width, height, len(mines)); err != nil {
		return nil, err
	}

	board := newEmptyBoard(width, height)
	for _, p := range mines {
		if !board.InBounds(p.X, p.Y) {
			return nil, fmt.Errorf("%w: mine (%d,%d) is outside %dx%d", ErrInvalidConfiguration, p.X, p.Y, width, height)
		}
		if board.cells[p.Y][p.X].IsMine {
			return nil, fmt.Errorf("%w: duplicate mine at (%d,%d)", ErrInvalidConfiguration, p.X, p.Y)
		}
		board.cells[p.Y][p.X].IsMine = true
		board.mineCount++
	}
	board.calculateNeighbors()

	return board, nil
}

func validate(width, height, mineCount int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalidConfiguration, width, height)
	}
	if mineCount < 0 {
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidConfiguration, mineCount)
	}
	if mineCount >= width*height {
		return fmt.Errorf("%w: %d mines do not fit in %d cells", ErrInvalidConfiguration, mineCount, width*height)
	}
	return nil
}

func newEmptyBoard(width, height int) *Board {
	cells := make([][]Cell, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]Cell, width)
	}
	return &Board{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// placeMines は地雷をランダムに配置します（重複なしの一様抽出）
func (b *Board) placeMines(count int, rng *rand.Rand) {
	for _, i := range rng.Perm(b.width * b.height)[:count] {
		b.cells[i/b.width][i%b.width].IsMine = true
	}
	b.mineCount = count
}

// calculateNeighbors は全マスの NeighborCount を計算します
func (b *Board) calculateNeighbors() {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[y][x].IsMine {
				continue
			}
			count := 0
			b.Neighbors(x, y, func(nx, ny int) {
				if b.cells[ny][nx].IsMine {
					count++
				}
			})
			b.cells[y][x].NeighborCount = count
		}
	}
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineCount() int { return b.mineCount }

// InBounds は座標が盤面の中にあるかを返します
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Neighbors は周囲8マスのうち盤面内のものについて fn を呼びます
func (b *Board) Neighbors(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.InBounds(nx, ny) {
				fn(nx, ny)
			}
		}
	}
}

// Cell は指定マスのコピーを返します
func (b *Board) Cell(x, y int) Cell {
	return b.cells[y][x]
}

// IsMineAt は指定マスが地雷かどうかを返します
func (b *Board) IsMineAt(x, y int) bool {
	return b.InBounds(x, y) && b.cells[y][x].IsMine
}

// Exploded は踏んだ地雷の位置を返します
func (b *Board) Exploded() (Point, bool) {
	if b.exploded == nil {
		return Point{}, false
	}
	return *b.exploded, true
}

// Open は指定された座標のマスを開けます
// 戻り値: ゲーム継続なら true, 地雷を踏んだら false
func (b *Board) Open(x, y int) bool {
	// 範囲外、すでに開いている、印があるなら何もしない
	if !b.InBounds(x, y) {
		return true
	}
	cell := &b.cells[y][x]
	if cell.IsRevealed || cell.Mark != MarkNone {
		return true
	}

	if cell.IsMine {
		cell.IsRevealed = true
		b.exploded = &Point{X: x, Y: y}
		return false
	}

	b.floodFill(x, y)
	return true
}

// floodFill は0のマスから連鎖的に開けます
// 再帰ではなくスタックを使い、開いたかどうかを訪問済みの印にします
func (b *Board) floodFill(x, y int) {
	stack := []Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := &b.cells[p.Y][p.X]
		if cell.IsRevealed || cell.Mark != MarkNone || cell.IsMine {
			continue
		}
		cell.IsRevealed = true

		if cell.NeighborCount != 0 {
			continue
		}
		b.Neighbors(p.X, p.Y, func(nx, ny int) {
			if !b.cells[ny][nx].IsRevealed {
				stack = append(stack, Point{X: nx, Y: ny})
			}
		})
	}
}

// ToggleMark は指定された座標の印を None → Flag → Question の順に切り替えます
func (b *Board) ToggleMark(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	cell := &b.cells[y][x]

	// すでに開いているマスには印を付けられない
	if cell.IsRevealed {
		return
	}

	cell.Mark = cell.Mark.Next()
}

// CheckClear は地雷以外のマスがすべて開いているかを返します（勝利条件）
func (b *Board) CheckClear() bool {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y][x]
			if !c.IsMine && !c.IsRevealed {
				return false
			}
		}
	}
	return true
}

// FlagCount は旗が立っているマスの数を返します
func (b *Board) FlagCount() int {
	n := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[y][x].Mark == MarkFlag {
				n++
			}
		}
	}
	return n
}

// RevealMines は負けたときの表示用に盤面を開けます
// 旗で正しく印を付けた地雷は閉じたままにします
func (b *Board) RevealMines() {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := &b.cells[y][x]
			if cell.IsMine && cell.Mark == MarkFlag {
				continue
			}
			cell.IsRevealed = true
		}
	}
}

// RevealAll は勝ったときの表示用に、地雷には旗を立てて残りをすべて開けます
func (b *Board) RevealAll() {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := &b.cells[y][x]
			if cell.IsMine {
				cell.Mark = MarkFlag
				cell.IsRevealed = false
			} else {
				cell.IsRevealed = true
			}
		}
	}
}

// DebugString は現在の盤面を文字列にします
// 未開封のマスは「-」、地雷は「*」、0は「.」、旗は「F」、？は「?」
func (b *Board) DebugString() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.cells[y][x]
			switch {
			case cell.IsRevealed && cell.IsMine:
				sb.WriteByte('*')
			case cell.IsRevealed && cell.NeighborCount == 0:
				sb.WriteByte('.')
			case cell.IsRevealed:
				sb.WriteByte(byte('0' + cell.NeighborCount))
			case cell.Mark == MarkFlag:
				sb.WriteByte('F')
			case cell.Mark == MarkQuestion:
				sb.WriteByte('?')
			default:
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
