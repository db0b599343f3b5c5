package domain

import (
	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
)

// Effect — отложенное изменение мира, которое применяется после анимации.
type Effect struct {
	ID    uint64
	Kind  enums.EffectKind
	Actor types.EntityID
	Item  types.EntityID
	From  Position
	Cell  Position
}

// Animator — внешний проигрыватель анимаций. done вызывается ровно один раз
// по завершении; до этого эффект считается «в полёте».
type Animator interface {
	Animate(e Effect, done func())
}

// InstantAnimator завершает анимацию сразу (синхронный хост, тесты, сервер).
type InstantAnimator struct{}

func (InstantAnimator) Animate(_ Effect, done func()) {
	done()
}

type pendingEffect struct {
	effect Effect
	done   bool
}

// EffectQueue хранит эффекты в порядке постановки. Не потокобезопасна:
// done-колбэки должны вызываться в потоке, владеющем миром.
type EffectQueue struct {
	next     uint64
	pending  []*pendingEffect
	animator Animator
}

func NewEffectQueue(animator Animator) *EffectQueue {
	if animator == nil {
		animator = InstantAnimator{}
	}
	return &EffectQueue{animator: animator}
}

// SetAnimator меняет проигрыватель для новых эффектов.
func (q *EffectQueue) SetAnimator(a Animator) {
	if a == nil {
		a = InstantAnimator{}
	}
	q.animator = a
}

// Enqueue ставит эффект и запускает анимацию. Возвращает присвоенный ID.
func (q *EffectQueue) Enqueue(e Effect) uint64 {
	q.next++
	e.ID = q.next
	p := &pendingEffect{effect: e}
	q.pending = append(q.pending, p)
	q.animator.Animate(e, func() { p.done = true })
	return e.ID
}

// InFlight — сколько анимаций ещё не завершено.
func (q *EffectQueue) InFlight() int {
	n := 0
	for _, p := range q.pending {
		if !p.done {
			n++
		}
	}
	return n
}

func (q *EffectQueue) Len() int {
	return len(q.pending)
}

// DrainCompleted забирает завершённые эффекты в порядке постановки,
// незавершённые остаются в очереди.
func (q *EffectQueue) DrainCompleted() []Effect {
	var ready []Effect
	rest := q.pending[:0]
	for _, p := range q.pending {
		if p.done {
			ready = append(ready, p.effect)
		} else {
			rest = append(rest, p)
		}
	}
	q.pending = rest
	return ready
}

// CancelFor снимает все эффекты актёра, завершённые или нет.
// Вызывающий обязан применить их сразу, чтобы не оставить предметы «в воздухе».
func (q *EffectQueue) CancelFor(actor types.EntityID) []Effect {
	var cancelled []Effect
	rest := q.pending[:0]
	for _, p := range q.pending {
		if p.effect.Actor == actor {
			p.done = true
			cancelled = append(cancelled, p.effect)
		} else {
			rest = append(rest, p)
		}
	}
	q.pending = rest
	return cancelled
}

// Pending — копия очереди для отладки.
func (q *EffectQueue) Pending() []Effect {
	out := make([]Effect, len(q.pending))
	for i, p := range q.pending {
		out[i] = p.effect
	}
	return out
}
