package tui

import (
	"time"

	"github.com/todo-knk/xibalba/internal/domain"
)

// cellFlight — время полёта снаряда на одну клетку.
const cellFlight = 30 * time.Millisecond

type flight struct {
	effect  domain.Effect
	started time.Time
	length  time.Duration
	done    func()
}

// Projectiles проигрывает полёт брошенных предметов. Реализует domain.Animator.
// Не потокобезопасен: Animate и Advance вызываются из цикла App.
type Projectiles struct {
	flights []*flight
	now     func() time.Time
}

func NewProjectiles() *Projectiles {
	return &Projectiles{now: time.Now}
}

func (p *Projectiles) Animate(e domain.Effect, done func()) {
	cells := e.From.ChebyshevTo(e.Cell)
	if cells < 1 {
		cells = 1
	}
	p.flights = append(p.flights, &flight{
		effect:  e,
		started: p.now(),
		length:  time.Duration(cells) * cellFlight,
		done:    done,
	})
}

// Advance завершает долетевшие снаряды.
func (p *Projectiles) Advance(now time.Time) {
	rest := p.flights[:0]
	for _, f := range p.flights {
		if now.Sub(f.started) >= f.length {
			f.done()
			continue
		}
		rest = append(rest, f)
	}
	p.flights = rest
}

// Active — сколько снарядов ещё в воздухе.
func (p *Projectiles) Active() int {
	return len(p.flights)
}

// Positions — текущие клетки снарядов по линейной интерполяции.
func (p *Projectiles) Positions(now time.Time) []domain.Position {
	out := make([]domain.Position, 0, len(p.flights))
	for _, f := range p.flights {
		t := float64(now.Sub(f.started)) / float64(f.length)
		if t > 1 {
			t = 1
		}
		from, to := f.effect.From, f.effect.Cell
		out = append(out, domain.Position{
			X: from.X + int(float64(to.X-from.X)*t+0.5),
			Y: from.Y + int(float64(to.Y-from.Y)*t+0.5),
		})
	}
	return out
}
