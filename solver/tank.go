package solver

import (
	"sort"

	"termsweeper/game"
)

// maxSegmentSize を超えるセグメントは探索しません（2^n 通りになるため）
const maxSegmentSize = 18

// TankSolver はバックトラック探索を行う構造体
type TankSolver struct {
	Board *game.Board
}

func NewTankSolver(b *game.Board) *TankSolver {
	return &TankSolver{Board: b}
}

// Solve はタンクアルゴリズムを実行し、確定した安全な手または地雷を返します
// 確定した手がなければ、地雷確率が一番低いマスを返します
func (ts *TankSolver) Solve() *Move {
	// 1. 境界マスを連結成分ごとにグループ化
	segments := ts.createSegments()

	var bestMove *Move
	bestProb := 1.0 // 1.0 = 地雷確率100% (最悪)

	for _, seg := range segments {
		if len(seg.unknowns) > maxSegmentSize {
			continue
		}

		solutions := ts.solveSegment(seg)
		if len(solutions) == 0 {
			continue // 解なし（旗が間違っている）
		}

		// 各マスの地雷確率を計算
		counts := make([]int, len(seg.unknowns))
		for _, sol := range solutions {
			for i, isMine := range sol {
				if isMine {
					counts[i]++
				}
			}
		}

		total := float64(len(solutions))
		for i, count := range counts {
			prob := float64(count) / total
			p := seg.unknowns[i]

			// 確定安全 (0%)
			if count == 0 {
				return &Move{X: p.x, Y: p.y, Type: MoveOpen, Strategy: "Tank", Confidence: 1.0}
			}
			// 確定地雷 (100%)
			if count == len(solutions) {
				return &Move{X: p.x, Y: p.y, Type: MoveFlag, Strategy: "Tank", Confidence: 1.0}
			}

			if prob < bestProb {
				bestProb = prob
				bestMove = &Move{
					X: p.x, Y: p.y,
					Type:       MoveOpen,
					Strategy:   "Tank(Prob)",
					Confidence: 1.0 - prob,
				}
			}
		}
	}

	return bestMove
}

// --- セグメント（連結成分）管理 ---

type segment struct {
	unknowns []pos  // このセグメントに含まれる未開封マス
	rules    []rule // このセグメント内の数字マス制約
}

type rule struct {
	cells []int // unknownsのインデックスのリスト
	mines int   // 必要な地雷数
}

func (ts *TankSolver) createSegments() []*segment {
	b := ts.Board
	w := b.Width()

	// 1. 「数字マス」と「それに隣接する未開封マス」を集める
	unknownMap := make(map[int]pos) // key: y*w+x
	numberedCells := []pos{}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < w; x++ {
			c := b.Cell(x, y)
			if !c.IsRevealed || c.IsMine || c.NeighborCount == 0 {
				continue
			}
			_, flags, hidden := neighborsInfo(b, x, y)
			if flags == c.NeighborCount || len(hidden) == 0 {
				continue
			}
			for _, n := range hidden {
				unknownMap[n.y*w+n.x] = n
			}
			numberedCells = append(numberedCells, pos{x, y})
		}
	}

	// 2. 連結成分分解
	// unknownsをノード、同じ数字マスに接していることをエッジとする
	adj := make(map[int][]int)
	for _, numPos := range numberedCells {
		_, _, neighbors := neighborsInfo(b, numPos.x, numPos.y)
		for i := 0; i < len(neighbors)-1; i++ {
			u1 := neighbors[i].y*w + neighbors[i].x
			for j := i + 1; j < len(neighbors); j++ {
				u2 := neighbors[j].y*w + neighbors[j].x
				adj[u1] = append(adj[u1], u2)
				adj[u2] = append(adj[u2], u1)
			}
		}
	}

	// mapの順序に依存しないようにキーを並べる
	keys := make([]int, 0, len(unknownMap))
	for k := range unknownMap {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	visited := make(map[int]bool)
	var segments []*segment

	for _, key := range keys {
		if visited[key] {
			continue
		}

		// BFSでグループ探索
		groupKeys := []int{}
		queue := []int{key}
		visited[key] = true

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			groupKeys = append(groupKeys, curr)

			for _, neighbor := range adj[curr] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}

		seg := &segment{
			unknowns: make([]pos, len(groupKeys)),
			rules:    []rule{},
		}

		localIndexMap := make(map[int]int)
		for i, k := range groupKeys {
			seg.unknowns[i] = unknownMap[k]
			localIndexMap[k] = i
		}

		// ルール生成
		for _, numPos := range numberedCells {
			_, flags, neighbors := neighborsInfo(b, numPos.x, numPos.y)
			if len(neighbors) == 0 {
				continue
			}

			// 最初の1つがこのセグメントに含まれていれば全て含まれている（連結しているため）
			firstKey := neighbors[0].y*w + neighbors[0].x
			if _, ok := localIndexMap[firstKey]; !ok {
				continue
			}
			r := rule{
				cells: make([]int, len(neighbors)),
				mines: b.Cell(numPos.x, numPos.y).NeighborCount - flags,
			}
			for i, n := range neighbors {
				r.cells[i] = localIndexMap[n.y*w+n.x]
			}
			seg.rules = append(seg.rules, r)
		}
		segments = append(segments, seg)
	}

	return segments
}

// --- 探索ロジック ---

func (ts *TankSolver) solveSegment(seg *segment) [][]bool {
	solutions := [][]bool{}
	config := make([]bool, len(seg.unknowns))
	ts.backtrack(seg, 0, config, &solutions)
	return solutions
}

func (ts *TankSolver) backtrack(seg *segment, index int, config []bool, solutions *[][]bool) {
	if index == len(seg.unknowns) {
		if isValid(seg, config, index, true) {
			sol := make([]bool, len(config))
			copy(sol, config)
			*solutions = append(*solutions, sol)
		}
		return
	}

	// 枝刈り
	if !isValid(seg, config, index, false) {
		return
	}

	// 仮定1: 地雷
	config[index] = true
	ts.backtrack(seg, index+1, config, solutions)

	// 仮定2: 安全
	config[index] = false
	ts.backtrack(seg, index+1, config, solutions)
}

// isValid は決定済み（index 未満）のマスだけを見て制約を確認します
func isValid(seg *segment, config []bool, decided int, isFinal bool) bool {
	for _, r := range seg.rules {
		mines := 0
		undecided := 0
		for _, idx := range r.cells {
			if idx >= decided {
				undecided++
			} else if config[idx] {
				mines++
			}
		}

		if isFinal {
			// 最終チェック: 地雷数がぴったり一致すること
			if mines != r.mines {
				return false
			}
			continue
		}
		// 途中チェック: 多すぎる、または残り全部が地雷でも足りない
		if mines > r.mines || mines+undecided < r.mines {
			return false
		}
	}
	return true
}
