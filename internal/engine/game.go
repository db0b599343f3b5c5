package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/data"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
	"github.com/todo-knk/xibalba/internal/engine/handlers/actions"
	"github.com/todo-knk/xibalba/internal/engine/handlers/admin"
	"github.com/todo-knk/xibalba/internal/systems"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/dungeon"
	"github.com/todo-knk/xibalba/pkg/logger"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrTurnPending   = errors.New("turn already requested")
	ErrGameOver      = errors.New("game over")
)

// snapshotLogTail — сколько последних записей лога уходит в снимок.
const snapshotLogTail = 20

// Game — одна партия: текущий уровень, планировщик и обработчики команд.
// Не потокобезопасна: все вызовы из одного потока (см. GameService).
type Game struct {
	cfg      Config
	catalog  *data.Catalog
	animator domain.Animator
	resolver systems.Resolver

	world     *domain.World
	scheduler *Scheduler
	handlers  map[domain.ActionType]handlers.HandlerFunc
	session   *domain.ReplaySession
}

type Option func(*Game)

func WithCatalog(c *data.Catalog) Option {
	return func(g *Game) { g.catalog = c }
}

// WithAnimator подключает проигрыватель анимаций хоста.
func WithAnimator(a domain.Animator) Option {
	return func(g *Game) { g.animator = a }
}

func WithResolver(r systems.Resolver) Option {
	return func(g *Game) { g.resolver = r }
}

// NewGame строит первый уровень по конфигу.
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		resolver: systems.DiceResolver{},
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		session: &domain.ReplaySession{
			Seed:      cfg.Seed,
			Depth:     1,
			Timestamp: time.Now().Unix(),
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.catalog == nil {
		c, err := data.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		g.catalog = c
	}

	g.registerHandlers()
	if err := g.loadLevel(1, nil); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) registerHandlers() {
	g.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	g.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	g.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	g.handlers[domain.ActionThrow] = handlers.WithPayload(actions.HandleThrow)
	g.handlers[domain.ActionFire] = handlers.WithPayload(actions.HandleFire)
	g.handlers[domain.ActionDebug] = handlers.WithEmptyPayload(actions.HandleDebug)
	g.handlers[domain.ActionDescend] = handlers.WithEmptyPayload(actions.HandleDescend)

	g.handlers[domain.ActionTeleport] = handlers.WithPayload(admin.HandleTeleport)
	g.handlers[domain.ActionSpawn] = handlers.WithPayload(admin.HandleSpawn)
}

// loadLevel заменяет мир новым уровнем на глубине depth.
func (g *Game) loadLevel(depth int, carry *dungeon.Carry) error {
	gen, err := g.cfg.generator()
	if err != nil {
		return err
	}
	falloff, err := g.cfg.falloff()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(g.cfg.LevelSeed(depth)))
	w, err := dungeon.NewLevel(depth, rng).
		WithSize(g.cfg.Width, g.cfg.Height).
		WithGenerator(gen).
		WithCatalog(g.catalog).
		WithAnimator(g.animator).
		WithMobs(g.cfg.Mobs).
		WithItems(g.cfg.Items).
		WithPlayer(carry).
		Build()
	if err != nil {
		return fmt.Errorf("load level %d: %w", depth, err)
	}
	if g.world != nil {
		w.Debug = g.world.Debug
	}

	pipeline := systems.DefaultPipeline(g.cfg.Rules(), g.resolver)
	for _, s := range pipeline {
		if vs, ok := s.(*systems.VisibilitySystem); ok {
			vs.Falloff = falloff
			// первый кадр уже должен быть освещён
			vs.Update(w)
		}
	}

	g.world = w
	g.scheduler = NewScheduler(pipeline)

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"depth":     depth,
		"seed":      g.cfg.LevelSeed(depth),
	}).Info("level loaded")
	return nil
}

// Submit принимает команду игрока. Команды, тратящие ход, ставят намерение
// и запрашивают ход у планировщика; исполнится он в Frame.
func (g *Game) Submit(cmd api.ClientCommand) (handlers.Result, error) {
	action := domain.ParseAction(cmd.Action)
	log := logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"action":    cmd.Action,
		"turn":      g.world.Turn,
	})

	handler, ok := g.handlers[action]
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	if action.ConsumesTurn() {
		if g.world.GameOver {
			return handlers.EmptyResult(), ErrGameOver
		}
		if g.scheduler.Requested() {
			return handlers.EmptyResult(), ErrTurnPending
		}
	}

	player, ok := g.world.Player()
	if !ok {
		return handlers.EmptyResult(), fmt.Errorf("player: %w", domain.ErrEntityNotFound)
	}

	turn := g.world.Turn
	res, err := handler(handlers.Context{
		World:      g.world,
		Actor:      player,
		ThrowRange: g.cfg.ThrowRange,
		Levels:     g,
		Catalog:    g.catalog,
	}, cmd.Payload)

	// после DESCEND g.world уже новый уровень
	if res.Msg != "" {
		g.AddLog(res.Msg, res.MsgType)
	}
	if err != nil {
		log.WithError(err).Debug("command rejected")
		return res, err
	}

	if action != domain.ActionInit {
		g.session.Actions = append(g.session.Actions, domain.ReplayAction{
			Turn:    turn,
			Action:  action,
			Payload: cmd.Payload,
		})
	}
	if res.Turn {
		g.scheduler.RequestTurn()
	}
	return res, nil
}

// Frame вызывается хостом раз в кадр. Возвращает true, если исполнен ход.
func (g *Game) Frame(ctx context.Context) (bool, error) {
	if g.world.GameOver {
		return false, nil
	}
	executed, err := g.scheduler.Tick(ctx, g.world)
	if err != nil {
		logger.Log.WithError(err).WithField("component", "game").Error("scheduler tick failed")
		return executed, err
	}
	if executed && g.world.GameOver {
		logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"turn":      g.world.Turn,
			"depth":     g.world.Depth,
		}).Info("game over")
	}
	return executed, nil
}

// Descend переносит игрока на следующий уровень.
func (g *Game) Descend() error {
	carry, ok := dungeon.ExtractCarry(g.world)
	if !ok {
		return fmt.Errorf("descend: player: %w", domain.ErrEntityNotFound)
	}
	return g.loadLevel(g.world.Depth+1, carry)
}

// Snapshot — снимок для рендера. Состояние мира не меняется.
func (g *Game) Snapshot() api.ServerResponse {
	player, _ := g.world.Player()
	return BuildSnapshot(g.world, player, g.world.Log.Recent(snapshotLogTail))
}

func (g *Game) ToggleDebug() {
	g.world.Debug = !g.world.Debug
}

func (g *Game) World() *domain.World { return g.world }

func (g *Game) Scheduler() *Scheduler { return g.scheduler }

func (g *Game) Config() Config { return g.cfg }

func (g *Game) Catalog() *data.Catalog { return g.catalog }

func (g *Game) Depth() int { return g.world.Depth }

func (g *Game) GameOver() bool { return g.world.GameOver }

func (g *Game) Player() types.EntityID {
	id, _ := g.world.Player()
	return id
}

// Session — записанные команды партии для повтора.
func (g *Game) Session() *domain.ReplaySession { return g.session }
