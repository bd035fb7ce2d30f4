package game

import "errors"

// ErrInvalidConfiguration は盤面のサイズや地雷数が不正なときのエラーです
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Mark はプレイヤーがマスに付ける印です
type Mark int

const (
	MarkNone     Mark = iota // 印なし
	MarkFlag                 // 旗（地雷だと思う）
	MarkQuestion             // ？（迷っている）
)

// Next は None → Flag → Question → None の順で次の印を返します
func (m Mark) Next() Mark {
	switch m {
	case MarkNone:
		return MarkFlag
	case MarkFlag:
		return MarkQuestion
	default:
		return MarkNone
	}
}

func (m Mark) String() string {
	switch m {
	case MarkFlag:
		return "flag"
	case MarkQuestion:
		return "question"
	default:
		return "none"
	}
}

// Cell は1つのマスの情報を持ちます
type Cell struct {
	IsMine        bool // 地雷かどうか
	IsRevealed    bool // すでに開けられたか
	Mark          Mark // プレイヤーの印
	NeighborCount int  // 周囲8マスにある地雷の数
}

// Point は盤面上の座標です
type Point struct {
	X, Y int
}

// Board はゲーム盤面全体を持ちます
// マスの書き換えはすべて Board のメソッド経由で行います
type Board struct {
	width     int      // 横のマス数
	height    int      // 縦のマス数
	mineCount int      // 地雷の数
	cells     [][]Cell // 2次元配列でマスを管理 (cells[y][x])
	exploded  *Point   // 踏んでしまった地雷
}
