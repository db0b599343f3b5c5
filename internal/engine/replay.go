package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// Replay заново проигрывает записанную партию с тем же зерном.
// Анимации завершаются мгновенно, поэтому каждый запрошенный ход
// исполняется сразу после команды.
func Replay(ctx context.Context, cfg Config, session *domain.ReplaySession, opts ...Option) (*Game, error) {
	cfg.Seed = session.Seed
	opts = append(opts, WithAnimator(domain.InstantAnimator{}))

	g, err := NewGame(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	log := logger.Log.WithFields(logrus.Fields{"component": "replay", "seed": session.Seed})
	for i, act := range session.Actions {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		if act.Turn != g.world.Turn {
			log.WithFields(logrus.Fields{
				"index":    i,
				"recorded": act.Turn,
				"actual":   g.world.Turn,
			}).Warn("replay diverged from recording")
		}

		_, err := g.Submit(api.ClientCommand{Action: act.Action.String(), Payload: act.Payload})
		if err != nil && !errors.Is(err, domain.ErrInvalidAction) && !errors.Is(err, domain.ErrEntityNotFound) {
			return g, fmt.Errorf("replay action %d (%s): %w", i, act.Action, err)
		}
		for g.scheduler.Requested() && !g.world.GameOver {
			executed, err := g.Frame(ctx)
			if err != nil {
				return g, fmt.Errorf("replay action %d: %w", i, err)
			}
			if !executed {
				break
			}
		}
	}

	log.WithFields(logrus.Fields{
		"actions": len(session.Actions),
		"turn":    g.world.Turn,
		"depth":   g.world.Depth,
		"over":    g.world.GameOver,
	}).Info("replay finished")
	return g, nil
}
