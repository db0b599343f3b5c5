package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/pkg/api"
)

// play прогоняет серию команд, исполняя каждый запрошенный ход.
func play(t *testing.T, g *Game, cmds []api.ClientCommand) {
	t.Helper()
	for _, c := range cmds {
		if _, err := g.Submit(c); err != nil {
			continue
		}
		for g.Scheduler().Requested() && !g.GameOver() {
			executed, err := g.Frame(context.Background())
			require.NoError(t, err)
			if !executed {
				break
			}
		}
	}
}

func TestReplay_ReproducesGame(t *testing.T) {
	cfg := NewConfig()
	cfg.Seed = 42

	g, err := NewGame(cfg)
	require.NoError(t, err)

	var cmds []api.ClientCommand
	for i := 0; i < 4; i++ {
		cmds = append(cmds,
			cmd("MOVE", api.DirectionPayload{Dx: 1}),
			cmd("WAIT", nil),
			cmd("MOVE", api.DirectionPayload{Dy: 1}),
			cmd("MOVE", api.DirectionPayload{Dx: -1, Dy: -1}),
		)
	}
	play(t, g, cmds)

	replayed, err := Replay(context.Background(), cfg, g.Session())
	require.NoError(t, err)

	assert.Equal(t, g.World().Turn, replayed.World().Turn)
	assert.Equal(t, g.Snapshot(), replayed.Snapshot())
}

func TestReplay_UsesSessionSeed(t *testing.T) {
	g := newTestGame(t)
	play(t, g, []api.ClientCommand{cmd("WAIT", nil), cmd("WAIT", nil)})

	cfg := testConfig()
	cfg.Seed = 1000
	replayed, err := Replay(context.Background(), cfg, g.Session())
	require.NoError(t, err)

	assert.Equal(t, g.Config().Seed, replayed.Config().Seed)
	assert.Equal(t, 2, replayed.World().Turn)
}

func TestReplay_StopsOnCancelledContext(t *testing.T) {
	g := newTestGame(t)
	play(t, g, []api.ClientCommand{cmd("WAIT", nil)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Replay(ctx, testConfig(), g.Session())
	assert.ErrorIs(t, err, context.Canceled)
}
