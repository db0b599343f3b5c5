package dungeon

import (
	"fmt"
	"math/rand"

	"github.com/todo-knk/xibalba/internal/domain"
)

// ArenaGenerator — пустой зал, обнесённый стеной. Старт в центре, монстров нет.
// Удобен для тестов и отладки.
type ArenaGenerator struct {
	Start *domain.Position
}

func (g ArenaGenerator) Generate(width, height int, _ *rand.Rand) (*Layout, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: arena %dx%d is too small", domain.ErrCorruptMap, width, height)
	}
	l := newLayout(width, height, true)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				l.setWalkable(x, y, false)
			}
		}
	}
	l.PlayerStart = domain.Position{X: width / 2, Y: height / 2}
	if g.Start != nil {
		l.PlayerStart = *g.Start
	}
	return l, nil
}
