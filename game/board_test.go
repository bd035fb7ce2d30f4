package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMines(b *Board) int {
	n := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.Cell(x, y).IsMine {
				n++
			}
		}
	}
	return n
}

func TestNewBoard(t *testing.T) {
	t.Run("places exactly mineCount mines", func(t *testing.T) {
		cases := []struct{ w, h, mines int }{
			{1, 1, 0},
			{3, 3, 1},
			{3, 3, 8},
			{9, 9, 10},
			{40, 22, 56},
			{40, 22, 300},
			{40, 22, 879},
		}
		for _, c := range cases {
			for seed := int64(0); seed < 5; seed++ {
				b, err := NewBoard(c.w, c.h, c.mines, rand.New(rand.NewSource(seed)))
				require.NoError(t, err)
				assert.Equal(t, c.mines, countMines(b), "%dx%d seed %d", c.w, c.h, seed)
				assert.Equal(t, c.mines, b.MineCount())
			}
		}
	})

	t.Run("same seed gives same board", func(t *testing.T) {
		a, err := NewBoard(40, 22, 56, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		b, err := NewBoard(40, 22, 56, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		a.RevealAll()
		b.RevealAll()
		assert.Equal(t, a.DebugString(), b.DebugString())
	})

	t.Run("nil rng", func(t *testing.T) {
		b, err := NewBoard(5, 5, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, countMines(b))
	})

	t.Run("invalid configuration", func(t *testing.T) {
		cases := []struct {
			name        string
			w, h, mines int
		}{
			{"mines fill board", 3, 3, 9},
			{"more mines than cells", 3, 3, 10},
			{"single cell with a mine", 1, 1, 1},
			{"negative mines", 3, 3, -1},
			{"zero width", 0, 3, 0},
			{"negative height", 3, -1, 0},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				b, err := NewBoard(c.w, c.h, c.mines, nil)
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				assert.Nil(t, b)
			})
		}
	})
}

func TestNewBoardWithMines(t *testing.T) {
	t.Run("rejects out of bounds mine", func(t *testing.T) {
		_, err := NewBoardWithMines(3, 3, []Point{{X: 3, Y: 0}})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("rejects duplicate mine", func(t *testing.T) {
		_, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}, {X: 1, Y: 1}})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("rejects full board", func(t *testing.T) {
		_, err := NewBoardWithMines(1, 2, []Point{{X: 0, Y: 0}, {X: 0, Y: 1}})
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestNeighborCount(t *testing.T) {
	// 総当たりで数え直した値と比較する
	for seed := int64(0); seed < 20; seed++ {
		b, err := NewBoard(12, 7, 20, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		for y := 0; y < b.Height(); y++ {
			for x := 0; x < b.Width(); x++ {
				if b.Cell(x, y).IsMine {
					continue
				}
				want := 0
				for ny := y - 1; ny <= y+1; ny++ {
					for nx := x - 1; nx <= x+1; nx++ {
						if (nx != x || ny != y) && nx >= 0 && ny >= 0 && nx < b.Width() && ny < b.Height() && b.Cell(nx, ny).IsMine {
							want++
						}
					}
				}
				assert.Equal(t, want, b.Cell(x, y).NeighborCount, "seed %d cell (%d,%d)", seed, x, y)
			}
		}
	}

	t.Run("no wraparound at corners", func(t *testing.T) {
		// 右下の地雷は左上から見えてはいけない
		b, err := NewBoardWithMines(4, 4, []Point{{X: 3, Y: 3}, {X: 3, Y: 0}})
		require.NoError(t, err)
		assert.Equal(t, 0, b.Cell(0, 0).NeighborCount)
		assert.Equal(t, 0, b.Cell(0, 3).NeighborCount)
		assert.Equal(t, 1, b.Cell(2, 2).NeighborCount)
		assert.Equal(t, 1, b.Cell(2, 1).NeighborCount)
		assert.Equal(t, 1, b.Cell(3, 1).NeighborCount)
		assert.Equal(t, 1, b.Cell(3, 2).NeighborCount)
	})
}

func TestOpen(t *testing.T) {
	t.Run("3x3 with centre mine", func(t *testing.T) {
		b, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}})
		require.NoError(t, err)

		for _, p := range []Point{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
			assert.True(t, b.Open(p.X, p.Y))
			c := b.Cell(p.X, p.Y)
			assert.True(t, c.IsRevealed)
			assert.Equal(t, 1, c.NeighborCount)
		}
		// 数字のマスから連鎖はしない
		assert.False(t, b.Cell(1, 0).IsRevealed)
		assert.False(t, b.CheckClear())

		assert.False(t, b.Open(1, 1))
		p, ok := b.Exploded()
		assert.True(t, ok)
		assert.Equal(t, Point{X: 1, Y: 1}, p)
	})

	t.Run("flood fill reveals zero region and its border only", func(t *testing.T) {
		// 地雷は右端の上下の角だけ
		b, err := NewBoardWithMines(5, 5, []Point{{X: 4, Y: 0}, {X: 4, Y: 4}})
		require.NoError(t, err)

		assert.True(t, b.Open(0, 0))
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				c := b.Cell(x, y)
				if c.IsMine {
					assert.False(t, c.IsRevealed, "mine (%d,%d) revealed", x, y)
					continue
				}
				assert.True(t, c.IsRevealed, "cell (%d,%d) hidden", x, y)
			}
		}
		assert.True(t, b.CheckClear())
		_, exploded := b.Exploded()
		assert.False(t, exploded)
	})

	t.Run("flood fill stops at numbered cells", func(t *testing.T) {
		// 縦の壁で盤面を区切る
		mines := []Point{{X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 3, Y: 4}}
		b, err := NewBoardWithMines(7, 5, mines)
		require.NoError(t, err)

		b.Open(0, 2)
		for y := 0; y < 5; y++ {
			assert.True(t, b.Cell(0, y).IsRevealed)
			assert.True(t, b.Cell(1, y).IsRevealed)
			assert.True(t, b.Cell(2, y).IsRevealed)
			assert.False(t, b.Cell(4, y).IsRevealed)
			assert.False(t, b.Cell(6, y).IsRevealed)
		}
		assert.Equal(t, 2, b.Cell(2, 0).NeighborCount)
		assert.Equal(t, 3, b.Cell(2, 2).NeighborCount)
	})

	t.Run("marked cells are not revealed", func(t *testing.T) {
		b, err := NewBoardWithMines(3, 3, []Point{{X: 2, Y: 2}})
		require.NoError(t, err)

		b.ToggleMark(0, 0)
		assert.True(t, b.Open(0, 0))
		assert.False(t, b.Cell(0, 0).IsRevealed)

		b.ToggleMark(0, 0) // question
		assert.True(t, b.Open(0, 0))
		assert.False(t, b.Cell(0, 0).IsRevealed)

		// flagged mine is not opened either
		b.ToggleMark(2, 2)
		assert.True(t, b.Open(2, 2))
		assert.False(t, b.Cell(2, 2).IsRevealed)

		b.ToggleMark(0, 0) // none
		assert.True(t, b.Open(0, 0))
		assert.True(t, b.Cell(0, 0).IsRevealed)
	})

	t.Run("flood fill skips marked cells", func(t *testing.T) {
		b, err := NewBoardWithMines(4, 1, nil)
		require.NoError(t, err)

		b.ToggleMark(2, 0)
		b.Open(0, 0)
		assert.True(t, b.Cell(0, 0).IsRevealed)
		assert.True(t, b.Cell(1, 0).IsRevealed)
		assert.False(t, b.Cell(2, 0).IsRevealed)
		// 印の向こう側には届かない
		assert.False(t, b.Cell(3, 0).IsRevealed)
		assert.False(t, b.CheckClear())
	})

	t.Run("out of bounds and repeated opens", func(t *testing.T) {
		b, err := NewBoardWithMines(2, 2, []Point{{X: 0, Y: 0}})
		require.NoError(t, err)
		assert.True(t, b.Open(-1, 0))
		assert.True(t, b.Open(0, 2))
		assert.True(t, b.Open(1, 1))
		assert.True(t, b.Open(1, 1))
		assert.True(t, b.Cell(1, 1).IsRevealed)
	})

	t.Run("large empty board", func(t *testing.T) {
		b, err := NewBoardWithMines(40, 22, nil)
		require.NoError(t, err)
		b.Open(20, 11)
		assert.True(t, b.CheckClear())
	})
}

func TestSingleCellBoard(t *testing.T) {
	b, err := NewBoard(1, 1, 0, nil)
	require.NoError(t, err)
	assert.False(t, b.CheckClear())
	assert.True(t, b.Open(0, 0))
	assert.True(t, b.CheckClear())
}

func TestToggleMark(t *testing.T) {
	b, err := NewBoardWithMines(2, 1, []Point{{X: 1, Y: 0}})
	require.NoError(t, err)

	want := []Mark{MarkFlag, MarkQuestion, MarkNone, MarkFlag}
	for _, m := range want {
		b.ToggleMark(1, 0)
		assert.Equal(t, m, b.Cell(1, 0).Mark)
	}
	assert.Equal(t, 1, b.FlagCount())

	b.Open(0, 0)
	b.ToggleMark(0, 0)
	assert.Equal(t, MarkNone, b.Cell(0, 0).Mark)

	b.ToggleMark(5, 5) // 範囲外は無視
}

func TestMarkNext(t *testing.T) {
	assert.Equal(t, MarkFlag, MarkNone.Next())
	assert.Equal(t, MarkQuestion, MarkFlag.Next())
	assert.Equal(t, MarkNone, MarkQuestion.Next())
	assert.Equal(t, "question", MarkQuestion.String())
}

func TestCheckClearIgnoresMines(t *testing.T) {
	b, err := NewBoardWithMines(2, 1, []Point{{X: 0, Y: 0}})
	require.NoError(t, err)

	b.Open(1, 0)
	assert.True(t, b.CheckClear())

	// 地雷が開いても判定は変わらない
	b.Open(0, 0)
	assert.True(t, b.CheckClear())
}

func TestRevealMines(t *testing.T) {
	mines := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	b, err := NewBoardWithMines(3, 3, mines)
	require.NoError(t, err)

	b.ToggleMark(0, 0) // 正しい旗
	b.ToggleMark(2, 0)
	b.ToggleMark(2, 0) // ？は旗ではない
	b.ToggleMark(1, 1) // 間違った旗
	assert.False(t, b.Open(0, 2))
	b.RevealMines()

	assert.False(t, b.Cell(0, 0).IsRevealed)
	assert.Equal(t, MarkFlag, b.Cell(0, 0).Mark)
	assert.True(t, b.Cell(2, 0).IsRevealed)
	assert.True(t, b.Cell(0, 2).IsRevealed)
	assert.True(t, b.Cell(1, 1).IsRevealed)
	assert.True(t, b.Cell(2, 2).IsRevealed)
}

func TestRevealAll(t *testing.T) {
	b, err := NewBoardWithMines(3, 3, []Point{{X: 1, Y: 1}})
	require.NoError(t, err)
	b.ToggleMark(1, 1)
	b.ToggleMark(1, 1)

	b.RevealAll()
	assert.Equal(t, MarkFlag, b.Cell(1, 1).Mark)
	assert.False(t, b.Cell(1, 1).IsRevealed)
	assert.True(t, b.CheckClear())
	assert.Equal(t, 1, b.FlagCount())
}

func TestDebugString(t *testing.T) {
	b, err := NewBoardWithMines(3, 2, []Point{{X: 2, Y: 0}})
	require.NoError(t, err)
	b.Open(0, 1)
	b.ToggleMark(2, 0)
	assert.Equal(t, ".1F\n.1-\n", b.DebugString())
}
