package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"termsweeper/game"
)

const (
	BoardWidth  = 40 // 横のマス数
	BoardHeight = 22 // 縦のマス数（この下にメッセージ行が1行）

	DefaultMines = 56
	MaxMines     = 300
)

// Config holds the game's configuration values.
type Config struct {
	Mines    int    // 地雷の数
	Theme    string // 表示テーマ名 (classic, nyanko)
	LogFile  string // ログの出力先。空ならログを出さない
	LogLevel string // zerolog のレベル
	Seed     int64  // 地雷配置のシード
	HasSeed  bool   // Seed が指定されたか
}

// Load は .env と環境変数、コマンドライン引数（地雷数のみ）から設定を読みます
// envFiles を省略するとカレントディレクトリの .env を読みます（無くてもよい）
func Load(args []string, envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		Theme:    getEnvWithDefault("TERMSWEEPER_THEME", "classic"),
		LogFile:  os.Getenv("TERMSWEEPER_LOG_FILE"),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
	}

	mines, err := mineCount(args)
	if err != nil {
		return Config{}, err
	}
	cfg.Mines = mines

	if v, ok := os.LookupEnv("TERMSWEEPER_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("TERMSWEEPER_SEED must be an integer: %w", err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}

	return cfg, nil
}

func mineCount(args []string) (int, error) {
	switch len(args) {
	case 0:
		if v, ok := os.LookupEnv("TERMSWEEPER_MINES"); ok && v != "" {
			return ParseMineCount(v)
		}
		return DefaultMines, nil
	case 1:
		return ParseMineCount(args[0])
	default:
		return 0, fmt.Errorf("%w: expected at most one argument (mine count), got %d", game.ErrInvalidConfiguration, len(args))
	}
}

// ParseMineCount は地雷数の文字列を検証して返します
func ParseMineCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", game.ErrInvalidConfiguration, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: mine count %d is negative", game.ErrInvalidConfiguration, n)
	}
	if n > MaxMines {
		return 0, fmt.Errorf("%w: too many mines (%d > %d)", game.ErrInvalidConfiguration, n, MaxMines)
	}
	return n, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
