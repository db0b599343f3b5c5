package agent

import (
	"context"
	"encoding/json"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// throwDistance — с какого расстояния бот бросает, а не идёт в рукопашную.
const throwDistance = 5

// Service — то, что боту нужно от движка.
type Service interface {
	ProcessCommand(ctx context.Context, cmd api.ClientCommand) (handlers.Result, error)
}

// Bot — безголовый игрок. Видит ровно то же, что клиент по WebSocket
// (снимки из хаба), и отвечает командами.
//
// Поведение:
//  1. Враг вплотную: шаг в него (удар).
//  2. Враг в пределах броска и есть что бросить: THROW.
//  3. Виден выход: идём к нему, стоя на нём, DESCEND.
//  4. Иначе случайный шаг.
type Bot struct {
	SessionID string
	Service   Service
	Inbox     <-chan api.ServerResponse

	rng *rand.Rand
	log *logrus.Entry
}

func NewBot(sessionID string, svc Service, inbox <-chan api.ServerResponse, seed int64) *Bot {
	return &Bot{
		SessionID: sessionID,
		Service:   svc,
		Inbox:     inbox,
		rng:       rand.New(rand.NewSource(seed)),
		log:       logger.Component("bot").WithField("session", sessionID),
	}
}

// Run отвечает на каждый снимок, пока не кончится игра, канал или ctx.
func (b *Bot) Run(ctx context.Context) {
	b.log.Info("bot started")
	defer b.log.Info("bot stopped")

	b.send(ctx, api.ClientCommand{Action: "INIT"})
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-b.Inbox:
			if !ok {
				return
			}
			if snap.Type == engine.ResponseGameOver {
				b.log.WithField("turn", snap.Turn).Info("bot died")
				return
			}
			if snap.Type == engine.ResponseError {
				continue
			}
			b.send(ctx, b.Decide(snap))
		}
	}
}

// send отправляет команду; отказ заменяется ожиданием, чтобы цикл не встал.
func (b *Bot) send(ctx context.Context, cmd api.ClientCommand) {
	_, err := b.Service.ProcessCommand(ctx, cmd)
	if err == nil {
		return
	}
	b.log.WithError(err).WithField("action", cmd.Action).Debug("command rejected")
	if cmd.Action != "WAIT" && cmd.Action != "INIT" {
		_, _ = b.Service.ProcessCommand(ctx, api.ClientCommand{Action: "WAIT"})
	}
}

// Decide выбирает команду по снимку.
func (b *Bot) Decide(snap api.ServerResponse) api.ClientCommand {
	me, ok := findSelf(snap)
	if !ok {
		return api.ClientCommand{Action: "WAIT"}
	}

	if enemy, dist, ok := nearest(snap, me, isLiveEnemy); ok {
		if dist <= 1 {
			return move(enemy.Pos.X-me.Pos.X, enemy.Pos.Y-me.Pos.Y)
		}
		if dist <= throwDistance && me.Inventory != nil && len(me.Inventory.Items) > 0 {
			return command("THROW", api.TargetPayload{X: enemy.Pos.X, Y: enemy.Pos.Y})
		}
	}

	if exit, dist, ok := nearest(snap, me, func(e api.EntityView) bool { return e.Type == "EXIT" }); ok {
		if dist == 0 {
			return api.ClientCommand{Action: "DESCEND"}
		}
		return move(sign(exit.Pos.X-me.Pos.X), sign(exit.Pos.Y-me.Pos.Y))
	}

	for {
		dx, dy := b.rng.Intn(3)-1, b.rng.Intn(3)-1
		if dx != 0 || dy != 0 {
			return move(dx, dy)
		}
	}
}

func findSelf(snap api.ServerResponse) (api.EntityView, bool) {
	for _, e := range snap.Entities {
		if e.ID == snap.MyEntityID {
			return e, true
		}
	}
	return api.EntityView{}, false
}

func isLiveEnemy(e api.EntityView) bool {
	return e.Type == "ENEMY" && e.Stats != nil && !e.Stats.IsDead
}

// nearest — ближайшая подходящая сущность по Чебышёву.
func nearest(snap api.ServerResponse, me api.EntityView, match func(api.EntityView) bool) (api.EntityView, int, bool) {
	var best api.EntityView
	bestDist, found := 0, false
	for _, e := range snap.Entities {
		if e.ID == me.ID || !match(e) {
			continue
		}
		d := max(abs(e.Pos.X-me.Pos.X), abs(e.Pos.Y-me.Pos.Y))
		if !found || d < bestDist {
			best, bestDist, found = e, d, true
		}
	}
	return best, bestDist, found
}

func move(dx, dy int) api.ClientCommand {
	return command("MOVE", api.DirectionPayload{Dx: dx, Dy: dy})
}

func command(action string, payload any) api.ClientCommand {
	raw, _ := json.Marshal(payload)
	return api.ClientCommand{Action: action, Payload: raw}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
