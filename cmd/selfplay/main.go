// selfplay はヒント用ソルバーに何度もゲームを解かせて、結果をCSVで出力します
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"termsweeper/config"
	"termsweeper/game"
	"termsweeper/session"
)

// result は1ゲーム分の記録です
type result struct {
	seed    int64
	status  session.Status
	moves   int
	guesses int
}

func main() {
	games := flag.Int("games", 1000, "number of games to play")
	mines := flag.Int("mines", config.DefaultMines, "mines per board")
	seed := flag.Int64("seed", 1, "seed of the first game (game i uses seed+i)")
	out := flag.String("o", "", "CSV output file (default stdout)")
	flag.Parse()

	if _, err := config.ParseMineCount(strconv.Itoa(*mines)); err != nil {
		fmt.Fprintln(os.Stderr, "selfplay:", err)
		os.Exit(2)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "selfplay:", err)
			os.Exit(1)
		}
		defer file.Close()
		w = file
	}

	writer := csv.NewWriter(w)
	writer.Write([]string{"seed", "result", "moves", "guesses"})

	won := 0
	for i := 0; i < *games; i++ {
		r, err := playGame(*seed+int64(i), *mines)
		if err != nil {
			fmt.Fprintln(os.Stderr, "selfplay:", err)
			os.Exit(1)
		}
		if r.status == session.Won {
			won++
		}
		writer.Write([]string{
			strconv.FormatInt(r.seed, 10),
			r.status.String(),
			strconv.Itoa(r.moves),
			strconv.Itoa(r.guesses),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		fmt.Fprintln(os.Stderr, "selfplay:", err)
		os.Exit(1)
	}

	if *games > 0 {
		fmt.Fprintf(os.Stderr, "won %d/%d (%.1f%%)\n", won, *games, 100*float64(won)/float64(*games))
	}
}

// playGame は1ゲームをソルバーだけで最後まで進めます
func playGame(seed int64, mines int) (result, error) {
	rng := rand.New(rand.NewSource(seed))
	b, err := game.NewBoard(config.BoardWidth, config.BoardHeight, mines, rng)
	if err != nil {
		return result{}, err
	}
	s := session.New(b, rng)
	r := result{seed: seed}

	// 1手ごとに少なくとも1マス開くか旗が立つので、マスの数の2倍で必ず終わる
	limit := 2 * b.Width() * b.Height()
	for r.moves < limit {
		if s.CheckWin() {
			break
		}
		move, status := s.Step()
		if move == nil {
			break
		}
		r.moves++
		if move.IsGuess {
			r.guesses++
		}
		if status.Terminal() {
			break
		}
	}
	r.status = s.Status()
	return r, nil
}
