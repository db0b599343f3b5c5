package systems

import (
	"github.com/todo-knk/xibalba/internal/domain"
)

// walkLine обходит клетки отрезка p1 -> p2 по Брезенхэму, включая концы.
// Обход прекращается, если visit вернул false.
func walkLine(p1, p2 domain.Position, visit func(domain.Position) bool) {
	x0, y0 := p1.X, p1.Y
	dx, dy := abs(p2.X-x0), abs(p2.Y-y0)
	sx, sy := 1, 1
	if p2.X < x0 {
		sx = -1
	}
	if p2.Y < y0 {
		sy = -1
	}
	err := dx - dy

	for {
		if !visit(domain.Position{X: x0, Y: y0}) {
			return
		}
		if x0 == p2.X && y0 == p2.Y {
			return
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// HasLineOfSight проверяет прямую видимость между точками.
// Концы отрезка не проверяются: стоящий в проёме видит и виден.
func HasLineOfSight(m *domain.Map, p1, p2 domain.Position) bool {
	clear := true
	walkLine(p1, p2, func(p domain.Position) bool {
		if p == p1 || p == p2 {
			return true
		}
		if c, ok := m.Cell(p); !ok || c.Resistance >= 1 {
			clear = false
			return false
		}
		return true
	})
	return clear
}

// LandingCell — куда упадёт брошенный предмет: последняя проходимая клетка
// на линии броска до первой преграды.
func LandingCell(m *domain.Map, from, to domain.Position) domain.Position {
	landing := from
	walkLine(from, to, func(p domain.Position) bool {
		if p == from {
			return true
		}
		if m.IsBlocked(p) {
			return false
		}
		landing = p
		return true
	})
	return landing
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
