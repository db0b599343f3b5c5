package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/api"
)

type memoryRecorder struct {
	mu    sync.Mutex
	saved []*domain.ReplaySession
}

func (r *memoryRecorder) Save(s *domain.ReplaySession) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, s)
	return "memory", nil
}

func (r *memoryRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func startService(t *testing.T, opts ...ServiceOption) (*GameService, context.CancelFunc, <-chan error) {
	t.Helper()
	opts = append([]ServiceOption{WithFrameInterval(time.Millisecond)}, opts...)
	svc := NewService(newTestGame(t), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	t.Cleanup(cancel)
	return svc, cancel, done
}

// waitFor читает снимки, пока не придёт подходящий.
func waitFor(t *testing.T, ch <-chan api.ServerResponse, match func(api.ServerResponse) bool) api.ServerResponse {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			if match(msg) {
				return msg
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
			return api.ServerResponse{}
		}
	}
}

func TestService_InitPublishesSnapshot(t *testing.T) {
	svc, _, _ := startService(t)
	updates := svc.Hub.Register("test")

	_, err := svc.ProcessCommand(context.Background(), api.ClientCommand{Action: "INIT"})
	require.NoError(t, err)

	msg := waitFor(t, updates, func(r api.ServerResponse) bool { return true })
	assert.Equal(t, ResponseInit, msg.Type)
	assert.NotEmpty(t, msg.Logs)
}

func TestService_TurnExecutesOnFrame(t *testing.T) {
	svc, _, _ := startService(t)
	updates := svc.Hub.Register("test")

	res, err := svc.ProcessCommand(context.Background(), api.ClientCommand{Action: "WAIT"})
	require.NoError(t, err)
	assert.True(t, res.Turn)

	msg := waitFor(t, updates, func(r api.ServerResponse) bool { return r.Turn == 1 })
	assert.Equal(t, ResponseUpdate, msg.Type)

	var executed int
	require.NoError(t, svc.Inspect(context.Background(), func(g *Game) {
		executed = g.Scheduler().Executed()
	}))
	assert.Equal(t, 1, executed)
}

func TestService_CommandErrorsReturned(t *testing.T) {
	svc, _, _ := startService(t)

	_, err := svc.ProcessCommand(context.Background(), api.ClientCommand{Action: "DANCE"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestService_SavesOnStop(t *testing.T) {
	rec := &memoryRecorder{}
	svc, cancel, done := startService(t, WithRecorder(rec))

	_, err := svc.ProcessCommand(context.Background(), api.ClientCommand{Action: "WAIT"})
	require.NoError(t, err)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
	assert.Equal(t, 1, rec.count())

	// после остановки запросы не виснут
	_, err = svc.ProcessCommand(context.Background(), api.ClientCommand{Action: "WAIT"})
	assert.ErrorIs(t, err, ErrServiceStopped)
	_, err = svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrServiceStopped)
}

func TestService_SkipsEmptyRecording(t *testing.T) {
	rec := &memoryRecorder{}
	_, cancel, done := startService(t, WithRecorder(rec))

	cancel()
	<-done
	assert.Equal(t, 0, rec.count())
}
