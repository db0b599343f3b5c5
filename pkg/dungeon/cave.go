package dungeon

import (
	"fmt"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/todo-knk/xibalba/internal/domain"
)

// CaveGenerator — пещеры: шум задаёт начальное заполнение, клеточный
// автомат сглаживает стены, остаётся только крупнейшая связная область.
// Пятна грибов частично гасят свет, но проходимы.
type CaveGenerator struct {
	NoiseScale       float64
	FillThreshold    float64
	Steps            int
	FungusThreshold  float64
	FungusResistance float64
	MinFloorRatio    float64
	MaxAttempts      int
	Mobs             int
	MobMinDistance   int
}

func NewCaveGenerator() *CaveGenerator {
	return &CaveGenerator{
		NoiseScale:       0.12,
		FillThreshold:    0.45,
		Steps:            4,
		FungusThreshold:  0.78,
		FungusResistance: 0.5,
		MinFloorRatio:    0.3,
		MaxAttempts:      10,
		Mobs:             MobCount,
		MobMinDistance:   domain.DefaultVisionRadius,
	}
}

func (g *CaveGenerator) Generate(width, height int, rng *rand.Rand) (*Layout, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: cave %dx%d is too small", domain.ErrCorruptMap, width, height)
	}

	for attempt := 0; attempt < g.MaxAttempts; attempt++ {
		l := g.carve(width, height, rng)
		floor := len(l.FloorCells())
		if float64(floor) < g.MinFloorRatio*float64(width*height) {
			continue
		}
		g.growFungus(l, rng.Int63())
		pickStarts(l, rng, g.Mobs, g.MobMinDistance)
		return l, nil
	}
	return nil, fmt.Errorf("cave %dx%d: %w", width, height, domain.ErrExhaustedAttempts)
}

func (g *CaveGenerator) carve(width, height int, rng *rand.Rand) *Layout {
	l := newLayout(width, height, false)
	noise := opensimplex.NewNormalized(rng.Int63())

	for x := 1; x < width-1; x++ {
		for y := 1; y < height-1; y++ {
			v := noise.Eval2(float64(x)*g.NoiseScale, float64(y)*g.NoiseScale)*0.5 + rng.Float64()*0.5
			l.setWalkable(x, y, v >= g.FillThreshold)
		}
	}

	for i := 0; i < g.Steps; i++ {
		smooth(l)
	}
	keepLargestRegion(l)
	return l
}

// smooth — шаг автомата 4-5: клетка становится стеной при 5+ соседях-стенах
// и полом при 3 и меньше. Края карты всегда стены.
func smooth(l *Layout) {
	next := make([][]bool, l.Width)
	for x := range next {
		next[x] = append([]bool(nil), l.Walkable[x]...)
	}

	for x := 1; x < l.Width-1; x++ {
		for y := 1; y < l.Height-1; y++ {
			walls := 0
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if (dx != 0 || dy != 0) && !l.Walkable[x+dx][y+dy] {
						walls++
					}
				}
			}
			switch {
			case walls >= 5:
				next[x][y] = false
			case walls <= 3:
				next[x][y] = true
			}
		}
	}

	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			l.setWalkable(x, y, next[x][y])
		}
	}
}

// keepLargestRegion заливает стенами все области, кроме самой большой.
func keepLargestRegion(l *Layout) {
	region := make([][]int, l.Width)
	for x := range region {
		region[x] = make([]int, l.Height)
	}

	var sizes []int
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !l.Walkable[x][y] || region[x][y] != 0 {
				continue
			}
			id := len(sizes) + 1
			sizes = append(sizes, floodFill(l, region, x, y, id))
		}
	}
	if len(sizes) < 2 {
		return
	}

	best := 0
	for i, s := range sizes {
		if s > sizes[best] {
			best = i
		}
	}
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			if l.Walkable[x][y] && region[x][y] != best+1 {
				l.setWalkable(x, y, false)
			}
		}
	}
}

func floodFill(l *Layout, region [][]int, sx, sy, id int) int {
	stack := []domain.Position{{X: sx, Y: sy}}
	region[sx][sy] = id
	size := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, n := range p.Neighbours() {
			if !l.inBounds(n.X, n.Y) || !l.Walkable[n.X][n.Y] || region[n.X][n.Y] != 0 {
				continue
			}
			region[n.X][n.Y] = id
			stack = append(stack, n)
		}
	}
	return size
}

// growFungus ставит частичное сопротивление на пол там, где второй шум высок.
func (g *CaveGenerator) growFungus(l *Layout, seed int64) {
	noise := opensimplex.NewNormalized(seed)
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			if !l.Walkable[x][y] {
				continue
			}
			if noise.Eval2(float64(x)*g.NoiseScale*2, float64(y)*g.NoiseScale*2) >= g.FungusThreshold {
				l.Resistance[x][y] = g.FungusResistance
			}
		}
	}
}
