package systems

import (
	"math"

	"github.com/todo-knk/xibalba/internal/domain"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// Falloff — яркость на расстоянии distance при радиусе radius, значение в [0,1].
type Falloff func(distance float64, radius int) float64

// LinearFalloff: 1 в центре, линейно падает и остаётся > 0 на самом радиусе.
func LinearFalloff(distance float64, radius int) float64 {
	return 1 - distance/float64(radius+1)
}

// InverseFalloff: 1/(1+d).
func InverseFalloff(distance float64, _ int) float64 {
	return 1 / (1 + distance)
}

type lightCaster struct {
	resistance [][]float64
	light      [][]float64
	width      int
	height     int
	origin     domain.Position
	radius     int
	falloff    Falloff
}

// ComputeLight считает освещённость от origin с линейным затуханием.
func ComputeLight(resistance [][]float64, origin domain.Position, radius int) [][]float64 {
	return ComputeLightWith(resistance, origin, radius, LinearFalloff)
}

// ComputeLightWith — рекурсивный shadowcasting по 8 октантам.
// Клетки с сопротивлением 1 отбрасывают тень; частичное сопротивление
// промежуточных клеток гасит свет пропорционально сумме на линии от центра.
// Результат индексируется [x][y] и зависит только от входов.
func ComputeLightWith(resistance [][]float64, origin domain.Position, radius int, falloff Falloff) [][]float64 {
	width := len(resistance)
	height := 0
	if width > 0 {
		height = len(resistance[0])
	}

	light := make([][]float64, width)
	for x := range light {
		light[x] = make([]float64, height)
	}
	if origin.X < 0 || origin.Y < 0 || origin.X >= width || origin.Y >= height || radius < 0 {
		return light
	}
	if falloff == nil {
		falloff = LinearFalloff
	}

	c := &lightCaster{
		resistance: resistance,
		light:      light,
		width:      width,
		height:     height,
		origin:     origin,
		radius:     radius,
		falloff:    falloff,
	}

	light[origin.X][origin.Y] = 1
	for i := 0; i < 8; i++ {
		c.castLight(1, 1.0, 0.0,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i])
	}
	return light
}

func (c *lightCaster) castLight(row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}

	radiusSq := c.radius * c.radius

	for j := row; j <= c.radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			X := c.origin.X + dx*xx + dy*xy
			Y := c.origin.Y + dx*yx + dy*yy

			if X >= 0 && Y >= 0 && X < c.width && Y < c.height && dx*dx+dy*dy <= radiusSq {
				c.lightCell(domain.Position{X: X, Y: Y})
			}

			if blocked {
				if c.isOpaque(X, Y) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if c.isOpaque(X, Y) && j < c.radius {
				blocked = true
				c.castLight(j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// lightCell записывает яркость клетки. Октанты пересекаются по диагоналям,
// значение от этого не меняется: оно зависит только от самой клетки.
func (c *lightCaster) lightCell(p domain.Position) {
	if c.light[p.X][p.Y] > 0 {
		return
	}
	dist := c.origin.DistanceTo(p)
	v := c.falloff(dist, c.radius) * (1 - c.occlusion(p))
	c.light[p.X][p.Y] = clamp01(v)
}

// occlusion — сумма частичных сопротивлений между центром и клеткой.
// Непрозрачные клетки сюда не входят: их уже учёл shadowcasting.
func (c *lightCaster) occlusion(target domain.Position) float64 {
	total := 0.0
	walkLine(c.origin, target, func(p domain.Position) bool {
		if p == c.origin || p == target {
			return true
		}
		if r := c.resistance[p.X][p.Y]; r < 1 {
			total += r
		}
		return total < 1
	})
	return math.Min(total, 1)
}

func (c *lightCaster) isOpaque(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return true
	}
	return c.resistance[x][y] >= 1
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
