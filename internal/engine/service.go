package engine

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
	"github.com/todo-knk/xibalba/internal/network"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// DefaultFrameInterval — период кадра сервера.
const DefaultFrameInterval = 50 * time.Millisecond

var ErrServiceStopped = errors.New("game service stopped")

// Recorder сохраняет запись партии при остановке сервиса.
type Recorder interface {
	Save(session *domain.ReplaySession) (string, error)
}

type commandReply struct {
	res handlers.Result
	err error
}

type commandRequest struct {
	cmd   api.ClientCommand
	reply chan commandReply
}

type inspectRequest struct {
	fn   func(*Game)
	done chan struct{}
}

// GameService владеет Game и обслуживает его из одной горутины (Run).
// Команды и отладочные запросы приходят через каналы, снимки уходят в Hub.
type GameService struct {
	game *Game
	Hub  *network.Broadcaster

	commands chan commandRequest
	inspects chan inspectRequest
	stopped  chan struct{}

	frame    time.Duration
	recorder Recorder
}

type ServiceOption func(*GameService)

func WithFrameInterval(d time.Duration) ServiceOption {
	return func(s *GameService) { s.frame = d }
}

func WithRecorder(r Recorder) ServiceOption {
	return func(s *GameService) { s.recorder = r }
}

func NewService(game *Game, opts ...ServiceOption) *GameService {
	s := &GameService{
		game:     game,
		Hub:      network.NewBroadcaster(),
		commands: make(chan commandRequest),
		inspects: make(chan inspectRequest),
		stopped:  make(chan struct{}),
		frame:    DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run крутит игровой цикл до отмены ctx. При выходе запись партии
// отдаётся Recorder, если он задан.
func (s *GameService) Run(ctx context.Context) error {
	log := logger.Component("service")
	log.WithField("frame", s.frame).Info("game loop started")
	defer close(s.stopped)

	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.save(log)
			log.Info("game loop stopped")
			return nil

		case req := <-s.commands:
			res, err := s.game.Submit(req.cmd)
			req.reply <- commandReply{res: res, err: err}
			if err == nil {
				s.publish(s.responseType(req.cmd))
			}

		case req := <-s.inspects:
			req.fn(s.game)
			close(req.done)

		case <-ticker.C:
			executed, err := s.game.Frame(ctx)
			if err != nil {
				log.WithError(err).Error("frame failed")
				continue
			}
			if executed {
				s.publish(ResponseUpdate)
			}
		}
	}
}

// ProcessCommand передаёт команду в цикл и ждёт результата.
func (s *GameService) ProcessCommand(ctx context.Context, cmd api.ClientCommand) (handlers.Result, error) {
	req := commandRequest{cmd: cmd, reply: make(chan commandReply, 1)}
	select {
	case s.commands <- req:
	case <-s.stopped:
		return handlers.EmptyResult(), ErrServiceStopped
	case <-ctx.Done():
		return handlers.EmptyResult(), ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r.res, r.err
	case <-s.stopped:
		return handlers.EmptyResult(), ErrServiceStopped
	case <-ctx.Done():
		return handlers.EmptyResult(), ctx.Err()
	}
}

// Inspect выполняет fn в потоке цикла. fn не должна удерживать *Game.
func (s *GameService) Inspect(ctx context.Context, fn func(*Game)) error {
	req := inspectRequest{fn: fn, done: make(chan struct{})}
	select {
	case s.inspects <- req:
	case <-s.stopped:
		return ErrServiceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-s.stopped:
		return ErrServiceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot запрашивает текущий снимок у цикла.
func (s *GameService) Snapshot(ctx context.Context) (api.ServerResponse, error) {
	var snap api.ServerResponse
	err := s.Inspect(ctx, func(g *Game) {
		snap = g.Snapshot()
	})
	return snap, err
}

func (s *GameService) responseType(cmd api.ClientCommand) string {
	if domain.ParseAction(cmd.Action) == domain.ActionInit {
		return ResponseInit
	}
	return ResponseUpdate
}

func (s *GameService) publish(kind string) {
	snap := s.game.Snapshot()
	if snap.Type != ResponseGameOver {
		snap.Type = kind
	}
	s.Hub.Broadcast(snap)
}

func (s *GameService) save(log *logrus.Entry) {
	if s.recorder == nil {
		return
	}
	session := s.game.Session()
	if len(session.Actions) == 0 {
		return
	}
	path, err := s.recorder.Save(session)
	if err != nil {
		log.WithError(err).Error("failed to save replay")
		return
	}
	log.WithFields(logrus.Fields{
		"path":    path,
		"actions": len(session.Actions),
	}).Info("replay saved")
}
