package tui

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/internal/systems"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// FrameInterval — период кадра терминального клиента (~60 FPS).
const FrameInterval = 16 * time.Millisecond

// App — терминальный хост: владеет Game, читает клавиатуру и рисует кадры.
// Мир трогается только из горутины Run.
type App struct {
	screen   tcell.Screen
	game     *engine.Game
	renderer *Renderer
	missiles *Projectiles
	log      *logrus.Entry
}

// NewApp связывает экран с игрой. missiles должен быть тем же аниматором,
// что передан в engine.WithAnimator.
func NewApp(screen tcell.Screen, game *engine.Game, missiles *Projectiles) *App {
	return &App{
		screen:   screen,
		game:     game,
		renderer: NewRenderer(screen),
		missiles: missiles,
		log:      logger.Component("tui"),
	}
}

// Run крутит цикл до выхода игрока или отмены ctx. Экран должен быть
// инициализирован; Fini остаётся на вызывающем.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	if _, err := a.game.Submit(api.ClientCommand{Action: "INIT"}); err != nil {
		return err
	}
	a.draw(time.Now())

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}

		case now := <-ticker.C:
			if err := a.step(ctx, now); err != nil {
				return err
			}
		}
	}
}

// step — один кадр: анимации, такт планировщика, отрисовка.
func (a *App) step(ctx context.Context, now time.Time) error {
	a.missiles.Advance(now)
	if _, err := a.game.Frame(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.draw(now)
	return nil
}

func (a *App) draw(now time.Time) {
	a.renderer.Draw(a.game.Snapshot(), a.missiles.Positions(now))
}

// handleKey возвращает false, если игрок выходит.
func (a *App) handleKey(key tcell.Key, r rune) bool {
	cmd, action := commandFor(key, r)
	switch action {
	case keyQuit:
		return false
	case keyNone:
		return true
	case keyThrow:
		var ok bool
		if cmd, ok = a.throwCommand(); !ok {
			a.game.AddLog("Некого атаковать.", domain.LogInfo)
			return true
		}
	}

	if _, err := a.game.Submit(cmd); err != nil {
		// ErrTurnPending: клавиша нажата раньше, чем ход исполнился
		if !errors.Is(err, engine.ErrTurnPending) {
			a.log.WithError(err).WithField("action", cmd.Action).Debug("command rejected")
		}
	}
	return true
}

func (a *App) throwCommand() (api.ClientCommand, bool) {
	w := a.game.World()
	from, ok := w.PlayerPosition()
	if !ok {
		return api.ClientCommand{}, false
	}
	_, target, ok := systems.NearestVisibleEnemy(w, from)
	if !ok {
		return api.ClientCommand{}, false
	}
	raw, _ := json.Marshal(api.TargetPayload{X: target.X, Y: target.Y})
	return api.ClientCommand{Action: "THROW", Payload: raw}, true
}
