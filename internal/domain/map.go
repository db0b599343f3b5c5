package domain

import (
	"fmt"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
)

// Rand — минимальный источник случайности; *rand.Rand ему удовлетворяет.
type Rand interface {
	Intn(n int) int
}

// Cell — клетка пещеры.
// Resistance: 0 — прозрачна, 1 — непрозрачна, промежуточные значения частично гасят свет.
type Cell struct {
	Terrain    enums.Terrain `json:"terrain"`
	Walkable   bool          `json:"walkable"`
	Resistance float64       `json:"resistance"`
	Hidden     bool          `json:"hidden"`
	Forgotten  bool          `json:"forgotten"`
}

// Map — сетка Width x Height. Клетки хранятся построчно: index = y*Width + x.
type Map struct {
	Width  int
	Height int
	cells  []Cell
}

// NewMap создаёт открытую карту: всё проходимо, всё скрыто.
func NewMap(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrCorruptMap, width, height)
	}
	m := &Map{Width: width, Height: height, cells: make([]Cell, width*height)}
	for i := range m.cells {
		m.cells[i] = Cell{Terrain: enums.TerrainFloor, Walkable: true, Hidden: true}
	}
	return m, nil
}

// FromLayout строит карту из данных генератора. Оба среза индексируются [x][y].
func FromLayout(walkable [][]bool, resistance [][]float64) (*Map, error) {
	width := len(walkable)
	if width == 0 || len(resistance) != width {
		return nil, fmt.Errorf("%w: walkable has %d columns, resistance %d", ErrCorruptMap, width, len(resistance))
	}
	height := len(walkable[0])

	m, err := NewMap(width, height)
	if err != nil {
		return nil, err
	}
	for x := 0; x < width; x++ {
		if len(walkable[x]) != height || len(resistance[x]) != height {
			return nil, fmt.Errorf("%w: column %d has ragged height", ErrCorruptMap, x)
		}
		for y := 0; y < height; y++ {
			r := resistance[x][y]
			if r < 0 || r > 1 {
				return nil, fmt.Errorf("%w: resistance %.2f at (%d,%d)", ErrCorruptMap, r, x, y)
			}
			c := &m.cells[y*width+x]
			c.Walkable = walkable[x][y]
			c.Resistance = r
			switch {
			case !c.Walkable:
				c.Terrain = enums.TerrainWall
			case r > 0:
				c.Terrain = enums.TerrainFungus
			}
		}
	}
	return m, nil
}

func (m *Map) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// Cell возвращает ссылку на клетку; (nil, false) вне карты.
func (m *Map) Cell(p Position) (*Cell, bool) {
	if !m.InBounds(p) {
		return nil, false
	}
	return &m.cells[p.Y*m.Width+p.X], true
}

// IsBlocked — клетка вне карты или непроходима по рельефу.
// Сущности здесь не учитываются, это делает World.IsOccupied.
func (m *Map) IsBlocked(p Position) bool {
	c, ok := m.Cell(p)
	return !ok || !c.Walkable
}

// SetWall превращает клетку в стену (обвал и т.п.).
func (m *Map) SetWall(p Position) error {
	c, ok := m.Cell(p)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}
	c.Walkable = false
	c.Resistance = 1
	c.Terrain = enums.TerrainWall
	return nil
}

// SetFloor делает клетку проходимым полом.
func (m *Map) SetFloor(p Position) error {
	c, ok := m.Cell(p)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}
	c.Walkable = true
	c.Resistance = 0
	c.Terrain = enums.TerrainFloor
	return nil
}

// WallNeighbourCount считает непроходимых соседей; край карты — тоже стена.
func (m *Map) WallNeighbourCount(p Position) int {
	count := 0
	for _, n := range p.Neighbours() {
		if m.IsBlocked(n) {
			count++
		}
	}
	return count
}

// ResistanceMap — снимок сопротивлений для расчёта света, индекс [x][y].
func (m *Map) ResistanceMap() [][]float64 {
	out := make([][]float64, m.Width)
	for x := 0; x < m.Width; x++ {
		out[x] = make([]float64, m.Height)
		for y := 0; y < m.Height; y++ {
			out[x][y] = m.cells[y*m.Width+x].Resistance
		}
	}
	return out
}

// Walkability — снимок проходимости для поиска пути.
func (m *Map) Walkability() *WalkGrid {
	g := &WalkGrid{width: m.Width, height: m.Height, cells: make([]bool, len(m.cells))}
	for i, c := range m.cells {
		g.cells[i] = c.Walkable
	}
	return g
}

// FindOpenCell случайно выбирает проходимую клетку, удовлетворяющую pred (nil — любая).
// После maxAttempts неудачных проб возвращает ErrExhaustedAttempts.
func (m *Map) FindOpenCell(rng Rand, maxAttempts int, pred func(Position) bool) (Position, error) {
	for i := 0; i < maxAttempts; i++ {
		p := Position{X: rng.Intn(m.Width), Y: rng.Intn(m.Height)}
		if m.IsBlocked(p) {
			continue
		}
		if pred == nil || pred(p) {
			return p, nil
		}
	}
	return Position{}, fmt.Errorf("%w: %d tries on %dx%d map", ErrExhaustedAttempts, maxAttempts, m.Width, m.Height)
}

// ApplyLight переносит карту освещённости в состояние клеток:
// освещённая клетка открыта и не забыта; открытая неосвещённая — забыта, но остаётся открытой.
func (m *Map) ApplyLight(light [][]float64) {
	for x := 0; x < m.Width && x < len(light); x++ {
		col := light[x]
		for y := 0; y < m.Height && y < len(col); y++ {
			c := &m.cells[y*m.Width+x]
			if col[y] > 0 {
				c.Hidden = false
				c.Forgotten = false
			} else if !c.Hidden {
				c.Forgotten = true
			}
		}
	}
}

// Validate проверяет целостность после загрузки уровня.
func (m *Map) Validate() error {
	if m.Width <= 0 || m.Height <= 0 || len(m.cells) != m.Width*m.Height {
		return fmt.Errorf("%w: %dx%d with %d cells", ErrCorruptMap, m.Width, m.Height, len(m.cells))
	}
	for i, c := range m.cells {
		if c.Resistance < 0 || c.Resistance > 1 {
			return fmt.Errorf("%w: resistance %.2f at index %d", ErrCorruptMap, c.Resistance, i)
		}
	}
	return nil
}

// CountWalkable — сколько проходимых клеток на карте.
func (m *Map) CountWalkable() int {
	n := 0
	for _, c := range m.cells {
		if c.Walkable {
			n++
		}
	}
	return n
}

// WalkGrid — неизменяемый снимок проходимости.
type WalkGrid struct {
	width  int
	height int
	cells  []bool
}

// NewWalkGrid создаёт сетку, где все клетки имеют значение open.
func NewWalkGrid(width, height int, open bool) *WalkGrid {
	g := &WalkGrid{width: width, height: height, cells: make([]bool, width*height)}
	for i := range g.cells {
		g.cells[i] = open
	}
	return g
}

func (g *WalkGrid) Size() (int, int) {
	return g.width, g.height
}

func (g *WalkGrid) Walkable(p Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= g.width || p.Y >= g.height {
		return false
	}
	return g.cells[p.Y*g.width+p.X]
}

// Set меняет клетку снимка; используется при сборке сетки вручную.
func (g *WalkGrid) Set(p Position, open bool) {
	if p.X < 0 || p.Y < 0 || p.X >= g.width || p.Y >= g.height {
		return
	}
	g.cells[p.Y*g.width+p.X] = open
}
