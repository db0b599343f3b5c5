package domain

import "github.com/todo-knk/xibalba/internal/core/types/enums"

// Path — закэшированный маршрут без стартовой клетки.
// nil означает «маршрута нет», пустой не-nil — «маршрут пройден».
type Path []Position

// Empty — нужно ли перепланировать.
func (p Path) Empty() bool {
	return len(p) == 0
}

// Peek возвращает следующую клетку маршрута.
func (p Path) Peek() (Position, bool) {
	if len(p) == 0 {
		return Position{}, false
	}
	return p[0], true
}

// Pop возвращает маршрут без первой клетки. Результат не nil.
func (p Path) Pop() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[1:]
}

type Brain struct {
	Personalities []enums.Personality
	Path          Path
}

func (b *Brain) HasPersonality(p enums.Personality) bool {
	for _, own := range b.Personalities {
		if own == p {
			return true
		}
	}
	return false
}

// InvalidatePath сбрасывает маршрут, следующий ход перепланирует.
func (b *Brain) InvalidatePath() {
	b.Path = nil
}
