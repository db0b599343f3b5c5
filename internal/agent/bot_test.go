package agent

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

func entity(id, typ string, x, y int) api.EntityView {
	e := api.EntityView{ID: id, Type: typ}
	e.Pos.X, e.Pos.Y = x, y
	if typ == "ENEMY" || typ == "PLAYER" {
		e.Stats = &api.StatsView{HP: 5, MaxHP: 5}
	}
	return e
}

func snapshot(entities ...api.EntityView) api.ServerResponse {
	me := entities[0]
	me.Inventory = &api.InventoryView{Items: []api.ItemView{{ID: "9", Name: "Камень"}}}
	entities[0] = me
	return api.ServerResponse{Type: engine.ResponseUpdate, MyEntityID: me.ID, Entities: entities}
}

func decodeMove(t *testing.T, cmd api.ClientCommand) api.DirectionPayload {
	t.Helper()
	require.Equal(t, "MOVE", cmd.Action)
	var p api.DirectionPayload
	require.NoError(t, json.Unmarshal(cmd.Payload, &p))
	return p
}

func TestDecide_AttacksAdjacentEnemy(t *testing.T) {
	b := NewBot("s", nil, nil, 1)
	cmd := b.Decide(snapshot(entity("1", "PLAYER", 5, 5), entity("2", "ENEMY", 6, 4)))

	assert.Equal(t, api.DirectionPayload{Dx: 1, Dy: -1}, decodeMove(t, cmd))
}

func TestDecide_ThrowsAtDistantEnemy(t *testing.T) {
	b := NewBot("s", nil, nil, 1)
	cmd := b.Decide(snapshot(entity("1", "PLAYER", 5, 5), entity("2", "ENEMY", 8, 5)))

	require.Equal(t, "THROW", cmd.Action)
	var p api.TargetPayload
	require.NoError(t, json.Unmarshal(cmd.Payload, &p))
	assert.Equal(t, 8, p.X)
	assert.Equal(t, 5, p.Y)
}

func TestDecide_IgnoresDeadEnemies(t *testing.T) {
	b := NewBot("s", nil, nil, 1)
	dead := entity("2", "ENEMY", 6, 5)
	dead.Stats.IsDead = true

	cmd := b.Decide(snapshot(entity("1", "PLAYER", 5, 5), dead, entity("3", "EXIT", 5, 9)))
	assert.Equal(t, api.DirectionPayload{Dx: 0, Dy: 1}, decodeMove(t, cmd))
}

func TestDecide_DescendsOnExit(t *testing.T) {
	b := NewBot("s", nil, nil, 1)
	cmd := b.Decide(snapshot(entity("1", "PLAYER", 5, 5), entity("3", "EXIT", 5, 5)))
	assert.Equal(t, "DESCEND", cmd.Action)
}

func TestDecide_RandomStepIsValid(t *testing.T) {
	b := NewBot("s", nil, nil, 1)
	for i := 0; i < 20; i++ {
		p := decodeMove(t, b.Decide(snapshot(entity("1", "PLAYER", 5, 5))))
		assert.NoError(t, p.Validate())
	}
}

func TestDecide_NoSelfWaits(t *testing.T) {
	b := NewBot("s", nil, nil, 1)
	cmd := b.Decide(api.ServerResponse{MyEntityID: "404"})
	assert.Equal(t, "WAIT", cmd.Action)
}

type fakeService struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeService) ProcessCommand(_ context.Context, cmd api.ClientCommand) (handlers.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, cmd.Action)
	return handlers.EmptyResult(), nil
}

func TestRun_StopsOnGameOver(t *testing.T) {
	svc := &fakeService{}
	inbox := make(chan api.ServerResponse, 2)
	inbox <- snapshot(entity("1", "PLAYER", 5, 5), entity("3", "EXIT", 5, 5))
	inbox <- api.ServerResponse{Type: engine.ResponseGameOver}

	done := make(chan struct{})
	go func() {
		NewBot("s", svc, inbox, 1).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bot did not stop")
	}
	assert.Equal(t, []string{"INIT", "DESCEND"}, svc.actions)
}
