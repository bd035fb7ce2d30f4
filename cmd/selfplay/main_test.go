package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsweeper/session"
)

func TestPlayGame(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		r, err := playGame(seed, 40)
		require.NoError(t, err)
		assert.Equal(t, seed, r.seed)
		assert.True(t, r.status == session.Won || r.status == session.Lost, "seed %d ended %s", seed, r.status)
		assert.Positive(t, r.moves)
		assert.LessOrEqual(t, r.guesses, r.moves)
	}
}

func TestPlayGameSameSeed(t *testing.T) {
	a, err := playGame(11, 56)
	require.NoError(t, err)
	b, err := playGame(11, 56)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlayGameEmptyBoard(t *testing.T) {
	r, err := playGame(3, 0)
	require.NoError(t, err)
	assert.Equal(t, session.Won, r.status)
	assert.Equal(t, 1, r.moves)
}
