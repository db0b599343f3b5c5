package tui

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/pkg/api"
	"github.com/todo-knk/xibalba/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func arenaGame(t *testing.T, missiles *Projectiles) *engine.Game {
	t.Helper()
	cfg := engine.NewConfig()
	cfg.Seed = 7
	cfg.Width, cfg.Height = 20, 15
	cfg.Generator = "arena"
	cfg.Mobs, cfg.Items = 0, 0
	g, err := engine.NewGame(cfg, engine.WithAnimator(missiles))
	require.NoError(t, err)
	return g
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		action string
		dir    *api.DirectionPayload
		want   keyAction
	}{
		{name: "h", key: tcell.KeyRune, r: 'h', action: "MOVE", dir: &api.DirectionPayload{Dx: -1}, want: keyCommand},
		{name: "n", key: tcell.KeyRune, r: 'n', action: "MOVE", dir: &api.DirectionPayload{Dx: 1, Dy: 1}, want: keyCommand},
		{name: "arrow up", key: tcell.KeyUp, action: "MOVE", dir: &api.DirectionPayload{Dy: -1}, want: keyCommand},
		{name: "space", key: tcell.KeyRune, r: ' ', action: "WAIT", want: keyCommand},
		{name: "dot", key: tcell.KeyRune, r: '.', action: "WAIT", want: keyCommand},
		{name: "debug", key: tcell.KeyRune, r: '\\', action: "DEBUG", want: keyCommand},
		{name: "descend", key: tcell.KeyRune, r: '>', action: "DESCEND", want: keyCommand},
		{name: "throw", key: tcell.KeyRune, r: 't', want: keyThrow},
		{name: "quit", key: tcell.KeyRune, r: 'q', want: keyQuit},
		{name: "escape", key: tcell.KeyEscape, want: keyQuit},
		{name: "unbound", key: tcell.KeyRune, r: 'z', want: keyNone},
		{name: "unbound key", key: tcell.KeyF5, want: keyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, got := commandFor(tt.key, tt.r)
			require.Equal(t, tt.want, got)
			assert.Equal(t, tt.action, cmd.Action)
			if tt.dir != nil {
				var p api.DirectionPayload
				require.NoError(t, json.Unmarshal(cmd.Payload, &p))
				assert.Equal(t, *tt.dir, p)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, tcell.NewHexColor(0xFFAA00), ParseColor("#FFAA00", 1))
	assert.Equal(t, tcell.NewRGBColor(102, 102, 102), ParseColor("#FFFFFF", domain.LightFloor))
	assert.Equal(t, tcell.NewHexColor(0xC0C0C0), ParseColor("bogus", 1))
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), ParseColor("#FFFFFF", -1))
}

func TestProjectiles(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProjectiles()
	p.now = func() time.Time { return start }

	calls := 0
	p.Animate(domain.Effect{
		From: domain.Position{X: 0, Y: 0},
		Cell: domain.Position{X: 4, Y: 0},
	}, func() { calls++ })
	require.Equal(t, 1, p.Active())

	mid := start.Add(2 * cellFlight)
	assert.Equal(t, []domain.Position{{X: 2, Y: 0}}, p.Positions(mid))
	p.Advance(mid)
	assert.Equal(t, 0, calls)

	p.Advance(start.Add(4 * cellFlight))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, p.Active())

	p.Advance(start.Add(time.Second))
	assert.Equal(t, 1, calls)
}

func TestRenderer_ForgottenCellsAreDimmed(t *testing.T) {
	s := newScreen(t)
	snap := api.ServerResponse{
		Depth: 2,
		Turn:  5,
		Grid:  &api.GridMeta{Width: 3, Height: 1},
		Map: []api.TileView{
			{X: 0, Y: 0, Symbol: "#", Color: "#FFFFFF", IsWall: true, IsForgotten: true},
			{X: 1, Y: 0, Symbol: ".", Color: "#FFFFFF", Light: 1, IsVisible: true},
			{X: 2, Y: 0, Symbol: ".", Color: "#FFFFFF", Light: 0.1, IsVisible: true},
		},
		Logs: []api.LogEntry{{Turn: 5, Text: "Привет", Type: domain.LogInfo}},
	}

	NewRenderer(s).Draw(snap, []domain.Position{{X: 2, Y: 0}})

	r, _, style, _ := s.GetContent(0, 0)
	assert.Equal(t, '#', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(102, 102, 102), fg)

	_, _, style, _ = s.GetContent(1, 0)
	fg, _, _ = style.Decompose()
	assert.Equal(t, tcell.NewHexColor(0xFFFFFF), fg)

	r, _, _, _ = s.GetContent(2, 0)
	assert.Equal(t, '*', r, "missile drawn over the floor")

	r, _, _, _ = s.GetContent(0, 1)
	assert.Equal(t, 'Г', r, "status line under the map")
	r, _, _, _ = s.GetContent(0, 2)
	assert.Equal(t, 'П', r)
}

func TestRenderer_DrawsPlayerOverEntrance(t *testing.T) {
	s := newScreen(t)
	g := arenaGame(t, NewProjectiles())
	snap := g.Snapshot()

	var player api.EntityView
	for _, e := range snap.Entities {
		if e.Type == "PLAYER" {
			player = e
		}
	}
	require.NotEmpty(t, player.ID)

	NewRenderer(s).Draw(snap, nil)

	r, _, _, _ := s.GetContent(player.Pos.X, player.Pos.Y)
	assert.Equal(t, glyphRune(player.Render.Symbol), r)
}

func TestApp_KeyMovesPlayerOnNextFrame(t *testing.T) {
	s := newScreen(t)
	missiles := NewProjectiles()
	g := arenaGame(t, missiles)
	app := NewApp(s, g, missiles)

	require.True(t, app.handleKey(tcell.KeyRune, 'l'))
	require.NoError(t, app.step(context.Background(), time.Now()))

	pos, ok := g.World().PlayerPosition()
	require.True(t, ok)
	assert.Equal(t, domain.Position{X: 11, Y: 7}, pos)
	assert.Equal(t, 1, g.World().Turn)
}

func TestApp_ThrowWithoutEnemiesLogs(t *testing.T) {
	s := newScreen(t)
	missiles := NewProjectiles()
	g := arenaGame(t, missiles)
	app := NewApp(s, g, missiles)

	require.True(t, app.handleKey(tcell.KeyRune, 't'))
	assert.False(t, g.Scheduler().Requested())

	logs := g.Logs(1)
	require.Len(t, logs, 1)
	assert.Equal(t, "Некого атаковать.", logs[0].Text)
}

func TestApp_QuitKey(t *testing.T) {
	s := newScreen(t)
	missiles := NewProjectiles()
	app := NewApp(s, arenaGame(t, missiles), missiles)

	assert.False(t, app.handleKey(tcell.KeyRune, 'q'))
}
