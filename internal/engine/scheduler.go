package engine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/internal/systems"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// Состояния планировщика.
const (
	StateIdle      = "idle"
	StateExecuting = "executing"
	StateWaiting   = "waiting"
)

// События конечного автомата.
const (
	eventExecute = "execute"
	eventFinish  = "finish"
	eventWait    = "wait"
	eventResume  = "resume"
)

// Scheduler исполняет ход только по запросу игрока и только когда
// все анимации отложенных эффектов закончились.
type Scheduler struct {
	machine   *fsm.FSM
	systems   []systems.System
	requested bool
	executed  int
}

func NewScheduler(pipeline []systems.System) *Scheduler {
	s := &Scheduler{systems: pipeline}
	s.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventExecute, Src: []string{StateIdle}, Dst: StateExecuting},
			{Name: eventFinish, Src: []string{StateExecuting}, Dst: StateIdle},
			{Name: eventWait, Src: []string{StateIdle}, Dst: StateWaiting},
			{Name: eventResume, Src: []string{StateWaiting}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Log.WithFields(logrus.Fields{
					"component": "scheduler",
					"event":     e.Event,
					"from":      e.Src,
					"to":        e.Dst,
				}).Trace("scheduler transition")
			},
		},
	)
	return s
}

// RequestTurn помечает, что игрок выбрал действие.
func (s *Scheduler) RequestTurn() {
	s.requested = true
}

func (s *Scheduler) Requested() bool { return s.requested }

// State — текущее состояние автомата.
func (s *Scheduler) State() string { return s.machine.Current() }

// Executed — сколько ходов исполнено.
func (s *Scheduler) Executed() int { return s.executed }

// Systems — имена систем в порядке исполнения.
func (s *Scheduler) Systems() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = sys.Name()
	}
	return names
}

// Tick вызывается раз в кадр. Возвращает true, если ход был исполнен.
// Завершённые анимации применяются на каждом кадре, даже без запрошенного хода.
func (s *Scheduler) Tick(ctx context.Context, w *domain.World) (bool, error) {
	applyCompleted(w)
	if !s.requested {
		return false, nil
	}

	if w.Effects.InFlight() > 0 {
		if s.machine.Is(StateIdle) {
			if err := s.machine.Event(ctx, eventWait); err != nil {
				return false, fmt.Errorf("scheduler: %w", err)
			}
		}
		return false, nil
	}
	if s.machine.Is(StateWaiting) {
		if err := s.machine.Event(ctx, eventResume); err != nil {
			return false, fmt.Errorf("scheduler: %w", err)
		}
	}

	if err := s.machine.Event(ctx, eventExecute); err != nil {
		return false, fmt.Errorf("scheduler: %w", err)
	}

	for _, sys := range s.systems {
		sys.Update(w)
	}
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindAttributes)) {
		if a, ok := w.Attributes.Get(id); ok {
			a.Regenerate()
		}
	}

	// синхронный аниматор уже завершил эффекты этого хода
	applyCompleted(w)

	s.requested = false
	s.executed++
	w.Turn++

	if err := s.machine.Event(ctx, eventFinish); err != nil {
		return true, fmt.Errorf("scheduler: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "scheduler",
		"turn":      w.Turn,
		"depth":     w.Depth,
	}).Debug("turn executed")
	return true, nil
}

func applyCompleted(w *domain.World) {
	for _, e := range w.Effects.DrainCompleted() {
		systems.ApplyEffect(w, e)
	}
}
