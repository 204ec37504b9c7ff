package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// parseFloats splits "a,b,..." into exactly n numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma-separated numbers, got %d", s, n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (entity.Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return entity.Point{}, err
	}
	return entity.Point{X: v[0], Y: v[1]}, nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (entity.Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return entity.Rect{}, err
	}
	if v[2] < 0 || v[3] < 0 {
		return entity.Rect{}, fmt.Errorf("%q: negative size", s)
	}
	return entity.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
