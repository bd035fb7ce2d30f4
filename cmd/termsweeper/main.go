package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"termsweeper/config"
	"termsweeper/game"
	"termsweeper/session"
	"termsweeper/tui"
	"termsweeper/viewmodel"
)

const exitConfigError = 3

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 画面を壊さないよう、設定を読むまではログを出さない
	log.Logger = zerolog.Nop()

	cfg, err := config.Load(args)
	if err != nil {
		return fail(err)
	}

	logger, closer, err := config.NewLogger(cfg)
	if err != nil {
		return fail(err)
	}
	defer closer.Close()
	log.Logger = logger

	theme, err := viewmodel.ThemeByName(cfg.Theme)
	if err != nil {
		return fail(err)
	}

	seed := time.Now().UnixNano()
	if cfg.HasSeed {
		seed = cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	board, err := game.NewBoard(config.BoardWidth, config.BoardHeight, cfg.Mines, rng)
	if err != nil {
		return fail(err)
	}
	log.Info().Int64("seed", seed).Str("theme", theme.Name).Msg("board created")

	screen, err := tui.NewScreen()
	if err != nil {
		return fail(err)
	}
	defer screen.Fini()

	s := session.New(board, rng)
	status := tui.NewGame(screen, s, theme).Run()
	return status.ExitCode()
}

func fail(err error) int {
	log.Error().Err(err).Msg("startup failed")
	fmt.Fprintf(os.Stderr, "termsweeper: %v\n", err)
	return exitConfigError
}
