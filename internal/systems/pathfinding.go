package systems

import (
	"container/heap"
	"errors"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
)

// ErrNoPath — цель недостижима.
var ErrNoPath = errors.New("no path")

const (
	costStraight = 10
	costDiagonal = 14
)

// Walkable — снимок проходимости, по которому ищется путь.
type Walkable interface {
	Size() (int, int)
	Walkable(p domain.Position) bool
}

type pathNode struct {
	pos   domain.Position
	g, f  int
	seq   int
	index int
}

// openSet — min-heap по (f, порядок вставки).
type openSet []*pathNode

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if s[i].f != s[j].f {
		return s[i].f < s[j].f
	}
	return s[i].seq < s[j].seq
}

func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}

func (s *openSet) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*s)
	*s = append(*s, n)
}

func (s *openSet) Pop() any {
	old := *s
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*s = old[:len(old)-1]
	return n
}

// octile — допустимая эвристика для 8 направлений с ценами 10/14.
func octile(a, b domain.Position) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx < dy {
		dx, dy = dy, dx
	}
	return costStraight*(dx-dy) + costDiagonal*dy
}

// FindPath ищет кратчайший путь A* по 8 направлениям.
// Путь не содержит start и заканчивается на goal.
// При start == goal возвращается пустой не-nil путь.
func FindPath(grid Walkable, start, goal domain.Position) (domain.Path, error) {
	if start == goal {
		return domain.Path{}, nil
	}
	if !grid.Walkable(goal) {
		return nil, ErrNoPath
	}

	w, h := grid.Size()
	idx := func(p domain.Position) int { return p.Y*w + p.X }
	if start.X < 0 || start.Y < 0 || start.X >= w || start.Y >= h {
		return nil, ErrNoPath
	}

	best := make([]int, w*h)
	for i := range best {
		best[i] = -1
	}
	closed := make([]bool, w*h)
	parent := make([]int, w*h)

	seq := 0
	open := &openSet{}
	heap.Push(open, &pathNode{pos: start, g: 0, f: octile(start, goal), seq: seq})
	best[idx(start)] = 0
	parent[idx(start)] = -1

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		ci := idx(cur.pos)
		if closed[ci] {
			continue
		}
		closed[ci] = true

		if cur.pos == goal {
			return rebuild(parent, ci, idx(start), w), nil
		}

		for _, d := range enums.AllDirections {
			next := cur.pos.Step(d)
			if next.X < 0 || next.Y < 0 || next.X >= w || next.Y >= h {
				continue
			}
			ni := idx(next)
			if closed[ni] || !grid.Walkable(next) {
				continue
			}
			step := costStraight
			if next.X != cur.pos.X && next.Y != cur.pos.Y {
				step = costDiagonal
			}
			g := cur.g + step
			if best[ni] >= 0 && g >= best[ni] {
				continue
			}
			best[ni] = g
			parent[ni] = ci
			seq++
			heap.Push(open, &pathNode{pos: next, g: g, f: g + octile(next, goal), seq: seq})
		}
	}

	return nil, ErrNoPath
}

func rebuild(parent []int, goal, start, width int) domain.Path {
	var rev domain.Path
	for i := goal; i != start; i = parent[i] {
		rev = append(rev, domain.Position{X: i % width, Y: i / width})
	}
	path := make(domain.Path, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
