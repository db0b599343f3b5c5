package dungeon

import (
	"fmt"
	"math/rand"

	"github.com/todo-knk/xibalba/internal/domain"
)

// Rect — вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// RoomsGenerator — комнаты, соединённые Г-образными коридорами.
// Игрок стартует в центре первой комнаты.
type RoomsGenerator struct {
	MaxRooms int
	MinSize  int
	MaxSize  int
	Mobs     int
}

func NewRoomsGenerator() *RoomsGenerator {
	return &RoomsGenerator{MaxRooms: 8, MinSize: 4, MaxSize: 10, Mobs: MobCount}
}

func (g *RoomsGenerator) Generate(width, height int, rng *rand.Rand) (*Layout, error) {
	if width < g.MaxSize+2 || height < g.MaxSize+2 {
		return nil, fmt.Errorf("%w: rooms %dx%d is too small", domain.ErrCorruptMap, width, height)
	}

	l := newLayout(width, height, false)
	var rooms []Rect

	for i := 0; i < g.MaxRooms; i++ {
		w := randRange(rng, g.MinSize, g.MaxSize)
		h := randRange(rng, g.MinSize, g.MaxSize)
		x := randRange(rng, 1, width-w-1)
		y := randRange(rng, 1, height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}
		failed := false
		for _, other := range rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		carveRoom(l, newRoom)
		if len(rooms) > 0 {
			// Соединяем с предыдущей комнатой
			prevX, prevY := rooms[len(rooms)-1].Center()
			currX, currY := newRoom.Center()
			if rng.Intn(2) == 0 {
				carveHCorridor(l, prevX, currX, prevY)
				carveVCorridor(l, prevY, currY, currX)
			} else {
				carveVCorridor(l, prevY, currY, prevX)
				carveHCorridor(l, prevX, currX, currY)
			}
		}
		rooms = append(rooms, newRoom)
	}

	if len(rooms) == 0 {
		return nil, fmt.Errorf("rooms: %w", domain.ErrExhaustedAttempts)
	}

	pickStarts(l, rng, g.Mobs, domain.DefaultVisionRadius)
	cx, cy := rooms[0].Center()
	l.PlayerStart = domain.Position{X: cx, Y: cy}
	return l, nil
}

func carveRoom(l *Layout, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			l.setWalkable(x, y, true)
		}
	}
}

func carveHCorridor(l *Layout, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		l.setWalkable(x, y, true)
	}
}

func carveVCorridor(l *Layout, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		l.setWalkable(x, y, true)
	}
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}
