package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/domain"
)

func TestHasLineOfSight(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	require.NoError(t, w.Map.SetWall(domain.Position{X: 5, Y: 5}))

	assert.True(t, HasLineOfSight(w.Map, domain.Position{X: 1, Y: 1}, domain.Position{X: 8, Y: 1}))
	assert.False(t, HasLineOfSight(w.Map, domain.Position{X: 3, Y: 5}, domain.Position{X: 7, Y: 5}))
	// стена на конце отрезка не мешает её видеть
	assert.True(t, HasLineOfSight(w.Map, domain.Position{X: 3, Y: 5}, domain.Position{X: 5, Y: 5}))
	assert.True(t, HasLineOfSight(w.Map, domain.Position{X: 2, Y: 2}, domain.Position{X: 2, Y: 2}))
}

func TestLandingCell(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	require.NoError(t, w.Map.SetWall(domain.Position{X: 6, Y: 2}))

	from := domain.Position{X: 2, Y: 2}
	assert.Equal(t, domain.Position{X: 5, Y: 2}, LandingCell(w.Map, from, domain.Position{X: 8, Y: 2}))
	assert.Equal(t, domain.Position{X: 2, Y: 6}, LandingCell(w.Map, from, domain.Position{X: 2, Y: 6}))
	assert.Equal(t, domain.Position{X: 9, Y: 2}, LandingCell(w.Map, domain.Position{X: 7, Y: 2}, domain.Position{X: 12, Y: 2}))
}

func TestWalkLine_Endpoints(t *testing.T) {
	var cells []domain.Position
	walkLine(domain.Position{X: 0, Y: 0}, domain.Position{X: 3, Y: 1}, func(p domain.Position) bool {
		cells = append(cells, p)
		return true
	})
	require.NotEmpty(t, cells)
	assert.Equal(t, domain.Position{X: 0, Y: 0}, cells[0])
	assert.Equal(t, domain.Position{X: 3, Y: 1}, cells[len(cells)-1])
	for i := 1; i < len(cells); i++ {
		assert.True(t, cells[i-1].IsAdjacent(cells[i]))
	}
}
