package server

import (
	"encoding/json"
	"net/http"

	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/scheduler", h.handleScheduler)
}

type entityDump struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	HP       int      `json:"hp,omitempty"`
	Energy   int      `json:"energy,omitempty"`
	Traits   []string `json:"traits,omitempty"`
	PathLen  int      `json:"path_len,omitempty"`
	Light    float64  `json:"light"`
	HasMove  bool     `json:"has_move,omitempty"`
	HasMelee bool     `json:"has_melee,omitempty"`
}

// /debug/entities — все позиционированные сущности, включая невидимые игроку
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	var dump []entityDump
	err := h.Service.Inspect(r.Context(), func(g *engine.Game) {
		world := g.World()
		for _, id := range world.Registry.Query(ecs.MaskOf(domain.KindPosition)) {
			pos, _ := world.Positions.Get(id)
			d := entityDump{
				ID:    id.String(),
				Type:  enums.EntityType(id.Type()).String(),
				Name:  world.Name(id),
				X:     pos.X,
				Y:     pos.Y,
				Light: engine.LightAt(world, *pos),
			}
			if a, ok := world.Attributes.Get(id); ok {
				d.HP, d.Energy = a.Health, a.Energy
			}
			if b, ok := world.Brains.Get(id); ok {
				for _, p := range b.Personalities {
					d.Traits = append(d.Traits, p.String())
				}
				d.PathLen = len(b.Path)
			}
			d.HasMove = world.Movements.Has(id)
			d.HasMelee = world.Melees.Has(id)
			dump = append(dump, d)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, dump)
}

type schedulerDump struct {
	State     string   `json:"state"`
	Requested bool     `json:"requested"`
	Executed  int      `json:"executed"`
	Turn      int      `json:"turn"`
	Depth     int      `json:"depth"`
	InFlight  int      `json:"effects_in_flight"`
	Pending   int      `json:"effects_pending"`
	Systems   []string `json:"systems"`
	GameOver  bool     `json:"game_over"`
}

// /debug/scheduler — состояние планировщика ходов и очереди эффектов
func (h *DebugHandler) handleScheduler(w http.ResponseWriter, r *http.Request) {
	var dump schedulerDump
	err := h.Service.Inspect(r.Context(), func(g *engine.Game) {
		s, world := g.Scheduler(), g.World()
		dump = schedulerDump{
			State:     s.State(),
			Requested: s.Requested(),
			Executed:  s.Executed(),
			Turn:      world.Turn,
			Depth:     world.Depth,
			InFlight:  world.Effects.InFlight(),
			Pending:   world.Effects.Len(),
			Systems:   s.Systems(),
			GameOver:  world.GameOver,
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, dump)
}

func writeJSON(w http.ResponseWriter, data any) {
	// Разрешаем запросы с любого источника (локальный debug-клиент)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}
