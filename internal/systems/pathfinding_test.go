package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/domain"
)

func assertValidPath(t *testing.T, grid Walkable, start, goal domain.Position, path domain.Path) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, goal, path[len(path)-1], "path ends at goal")
	prev := start
	for _, p := range path {
		assert.True(t, prev.IsAdjacent(p), "%v -> %v is not an 8-neighbour step", prev, p)
		assert.True(t, grid.Walkable(p), "%v is not walkable", p)
		prev = p
	}
}

func TestFindPath_Open(t *testing.T) {
	grid := domain.NewWalkGrid(10, 10, true)

	tests := []struct {
		name       string
		start      domain.Position
		goal       domain.Position
		wantLength int
	}{
		{"straight", domain.Position{X: 0, Y: 0}, domain.Position{X: 5, Y: 0}, 5},
		{"diagonal", domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 4}, 4},
		{"mixed", domain.Position{X: 1, Y: 1}, domain.Position{X: 7, Y: 3}, 6},
		{"neighbour", domain.Position{X: 3, Y: 3}, domain.Position{X: 4, Y: 4}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := FindPath(grid, tt.start, tt.goal)
			require.NoError(t, err)
			assert.Len(t, path, tt.wantLength)
			assertValidPath(t, grid, tt.start, tt.goal, path)
			assert.NotContains(t, path, tt.start, "start is excluded")
		})
	}
}

func TestFindPath_AroundWall(t *testing.T) {
	grid := domain.NewWalkGrid(10, 10, true)
	for y := 0; y < 8; y++ {
		grid.Set(domain.Position{X: 5, Y: y}, false)
	}
	start, goal := domain.Position{X: 2, Y: 2}, domain.Position{X: 8, Y: 2}

	path, err := FindPath(grid, start, goal)
	require.NoError(t, err)
	assertValidPath(t, grid, start, goal, path)
	assert.Contains(t, path, domain.Position{X: 5, Y: 8})
}

func TestFindPath_Unreachable(t *testing.T) {
	grid := domain.NewWalkGrid(10, 10, true)
	goal := domain.Position{X: 7, Y: 7}
	for _, n := range goal.Neighbours() {
		grid.Set(n, false)
	}

	path, err := FindPath(grid, domain.Position{X: 1, Y: 1}, goal)
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Nil(t, path)
}

func TestFindPath_GoalNotWalkable(t *testing.T) {
	grid := domain.NewWalkGrid(5, 5, true)
	grid.Set(domain.Position{X: 4, Y: 4}, false)

	_, err := FindPath(grid, domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 4})
	assert.ErrorIs(t, err, ErrNoPath)

	_, err = FindPath(grid, domain.Position{X: 0, Y: 0}, domain.Position{X: 9, Y: 9})
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	grid := domain.NewWalkGrid(5, 5, true)
	path, err := FindPath(grid, domain.Position{X: 2, Y: 2}, domain.Position{X: 2, Y: 2})
	require.NoError(t, err)
	assert.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindPath_Deterministic(t *testing.T) {
	grid := domain.NewWalkGrid(20, 20, true)
	grid.Set(domain.Position{X: 10, Y: 10}, false)
	start, goal := domain.Position{X: 0, Y: 0}, domain.Position{X: 19, Y: 13}

	first, err := FindPath(grid, start, goal)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := FindPath(grid, start, goal)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindPath_OnMap(t *testing.T) {
	w := newTestWorld(t, 12, 12)
	for x := 0; x < 11; x++ {
		require.NoError(t, w.Map.SetWall(domain.Position{X: x, Y: 6}))
	}
	grid := w.Map.Walkability()
	start, goal := domain.Position{X: 1, Y: 1}, domain.Position{X: 1, Y: 10}

	path, err := FindPath(grid, start, goal)
	require.NoError(t, err)
	assertValidPath(t, grid, start, goal, path)
}
