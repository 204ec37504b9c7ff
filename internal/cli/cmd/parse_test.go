package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dragkit/internal/domain/entity"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("12.5, -3")
	require.NoError(t, err)
	assert.Equal(t, entity.Point{X: 12.5, Y: -3}, p)

	_, err = parsePoint("1")
	require.Error(t, err)
	_, err = parsePoint("a,b")
	require.Error(t, err)
}

func TestParseRect(t *testing.T) {
	r, err := parseRect("0,10,100,20")
	require.NoError(t, err)
	assert.Equal(t, entity.Rect{X: 0, Y: 10, Width: 100, Height: 20}, r)

	_, err = parseRect("0,0,-1,5")
	require.Error(t, err)
	_, err = parseRect("0,0,1")
	require.Error(t, err)
}
