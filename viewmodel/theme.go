package viewmodel

import (
	"fmt"
	"strings"
)

// Theme はマスの表示に使う文字のセットです。どれも全角（2桁）
type Theme struct {
	Name      string
	Hidden    rune
	Flag      rune
	Question  rune
	Mine      rune
	Explosion rune
	Digits    [9]rune // 0 は空白
}

var fullWidthDigits = [9]rune{'　', '１', '２', '３', '４', '５', '６', '７', '８'}

var (
	ThemeClassic = Theme{
		Name:      "classic",
		Hidden:    '＃',
		Flag:      '＠',
		Question:  '？',
		Mine:      '＊',
		Explosion: 'Ｘ',
		Digits:    fullWidthDigits,
	}
	ThemeNyanko = Theme{
		Name:      "nyanko",
		Hidden:    '＃',
		Flag:      '🚩',
		Question:  '？',
		Mine:      '😺',
		Explosion: 'Ｘ',
		Digits:    fullWidthDigits,
	}
)

// ThemeByName は名前からテーマを返します。大文字小文字は区別しません
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ThemeClassic.Name:
		return ThemeClassic, nil
	case ThemeNyanko.Name:
		return ThemeNyanko, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}
