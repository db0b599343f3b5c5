package domain

import (
	"math"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo возвращает евклидово расстояние.
func (p Position) DistanceTo(other Position) float64 {
	return math.Sqrt(float64(p.DistanceSquaredTo(other)))
}

// DistanceSquaredTo — квадрат расстояния для сравнений без корней.
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ChebyshevTo — число шагов при 8-направленном движении.
func (p Position) ChebyshevTo(other Position) int {
	dx, dy := abs(p.X-other.X), abs(p.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent — соседняя клетка, включая диагонали. Сама клетка соседней не считается.
func (p Position) IsAdjacent(other Position) bool {
	return p != other && p.ChebyshevTo(other) == 1
}

func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step — соседняя клетка в направлении d.
func (p Position) Step(d enums.Direction) Position {
	dx, dy := d.Delta()
	return p.Shift(dx, dy)
}

// DirectionTo — направление первого шага к other.
func (p Position) DirectionTo(other Position) enums.Direction {
	return enums.DirectionFromDelta(other.X-p.X, other.Y-p.Y)
}

// Neighbours — восемь соседей в порядке enums.AllDirections.
func (p Position) Neighbours() [8]Position {
	var out [8]Position
	for i, d := range enums.AllDirections {
		out[i] = p.Step(d)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
