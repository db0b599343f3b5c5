package dungeon

import (
	"fmt"
	"math/rand"

	"github.com/todo-knk/xibalba/internal/domain"
)

// Размер уровня по умолчанию
const (
	MapWidth  = 40
	MapHeight = 30
	MobCount  = 20
)

// Layout — результат генератора. Матрицы индексируются [x][y].
type Layout struct {
	Width       int
	Height      int
	Walkable    [][]bool
	Resistance  [][]float64
	PlayerStart domain.Position
	MobStarts   []domain.Position
}

// Generator строит раскладку уровня. Всё случайное берётся из rng.
type Generator interface {
	Generate(width, height int, rng *rand.Rand) (*Layout, error)
}

func newLayout(width, height int, walkable bool) *Layout {
	l := &Layout{
		Width:      width,
		Height:     height,
		Walkable:   make([][]bool, width),
		Resistance: make([][]float64, width),
	}
	for x := 0; x < width; x++ {
		l.Walkable[x] = make([]bool, height)
		l.Resistance[x] = make([]float64, height)
		for y := 0; y < height; y++ {
			l.setWalkable(x, y, walkable)
		}
	}
	return l
}

func (l *Layout) setWalkable(x, y int, open bool) {
	l.Walkable[x][y] = open
	if open {
		l.Resistance[x][y] = 0
	} else {
		l.Resistance[x][y] = 1
	}
}

func (l *Layout) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// FloorCells — все проходимые клетки в порядке обхода по строкам.
func (l *Layout) FloorCells() []domain.Position {
	var out []domain.Position
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Walkable[x][y] {
				out = append(out, domain.Position{X: x, Y: y})
			}
		}
	}
	return out
}

// Check — раскладка согласована по размерам и старт проходим.
func (l *Layout) Check() error {
	if l.Width <= 0 || l.Height <= 0 || len(l.Walkable) != l.Width || len(l.Resistance) != l.Width {
		return fmt.Errorf("%w: layout %dx%d", domain.ErrCorruptMap, l.Width, l.Height)
	}
	p := l.PlayerStart
	if !l.inBounds(p.X, p.Y) {
		return fmt.Errorf("%w: player start %d,%d", domain.ErrOutOfBounds, p.X, p.Y)
	}
	if len(l.Walkable[p.X]) != l.Height || !l.Walkable[p.X][p.Y] {
		return fmt.Errorf("%w: player start %d,%d is not walkable", domain.ErrCorruptMap, p.X, p.Y)
	}
	return nil
}

// pickStarts выбирает старт игрока и до count клеток для монстров.
// Монстры по возможности не ближе minDist к игроку.
func pickStarts(l *Layout, rng *rand.Rand, count, minDist int) {
	floor := l.FloorCells()
	if len(floor) == 0 {
		return
	}
	l.PlayerStart = floor[rng.Intn(len(floor))]

	rng.Shuffle(len(floor), func(i, j int) { floor[i], floor[j] = floor[j], floor[i] })

	var near []domain.Position
	l.MobStarts = l.MobStarts[:0]
	for _, p := range floor {
		if len(l.MobStarts) == count {
			break
		}
		if p == l.PlayerStart {
			continue
		}
		if p.ChebyshevTo(l.PlayerStart) < minDist {
			near = append(near, p)
			continue
		}
		l.MobStarts = append(l.MobStarts, p)
	}
	for _, p := range near {
		if len(l.MobStarts) == count {
			break
		}
		l.MobStarts = append(l.MobStarts, p)
	}
}
