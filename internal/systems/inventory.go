package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/ecs"
	"github.com/todo-knk/xibalba/pkg/logger"
)

// --- PICKUP ---

// PickUp кладёт предмет с земли в инвентарь актёра.
// Предмет теряет Position и получает владельца.
func PickUp(w *domain.World, actor, item types.EntityID) bool {
	inv, ok := w.Inventories.Get(actor)
	if !ok {
		return false
	}
	it, ok := w.Items.Get(item)
	if !ok || !it.Owner.IsNil() || it.Throwing {
		return false
	}

	it.Owner = actor
	w.Positions.Remove(item)
	inv.Items = append(inv.Items, item)

	logger.Log.WithFields(logrus.Fields{
		"component": "inventory",
		"actor_id":  actor,
		"item_id":   item,
	}).Debug("item picked up")

	if w.Players.Has(actor) {
		w.Logf(domain.LogInfo, "Вы подбираете %s.", it.Name)
	}
	return true
}

// --- DROP ---

// DropItem кладёт предмет на клетку: владелец снимается, полёт заканчивается.
func DropItem(w *domain.World, item types.EntityID, cell domain.Position) bool {
	it, ok := w.Items.Get(item)
	if !ok {
		return false
	}
	if !it.Owner.IsNil() {
		if inv, ok := w.Inventories.Get(it.Owner); ok {
			inv.Remove(item)
		}
	}
	it.Owner = types.NilEntityID
	it.Throwing = false

	if pos, ok := w.Positions.Get(item); ok {
		*pos = cell
	} else {
		w.Positions.Add(item, cell)
	}
	return true
}

// --- DESTROY ---

// DestroyItem удаляет предмет из мира и из инвентаря владельца.
func DestroyItem(w *domain.World, item types.EntityID) bool {
	it, ok := w.Items.Get(item)
	if !ok {
		return false
	}
	if !it.Owner.IsNil() {
		if inv, ok := w.Inventories.Get(it.Owner); ok {
			inv.Remove(item)
		}
	}
	return w.Registry.Destroy(item)
}

// ItemsAt — предметы, лежащие на клетке (без владельца и не в полёте).
func ItemsAt(w *domain.World, p domain.Position) []types.EntityID {
	var out []types.EntityID
	for _, id := range w.Registry.Query(ecs.MaskOf(domain.KindItem, domain.KindPosition)) {
		pos, _ := w.Positions.Get(id)
		it, _ := w.Items.Get(id)
		if *pos == p && it.Owner.IsNil() && !it.Throwing {
			out = append(out, id)
		}
	}
	return out
}

// ThrowableItems — предметы инвентаря, которые можно бросить или выпустить.
func ThrowableItems(w *domain.World, actor types.EntityID) []types.EntityID {
	inv, ok := w.Inventories.Get(actor)
	if !ok {
		return nil
	}
	var out []types.EntityID
	for _, id := range inv.Items {
		if _, ok := w.Armors.Get(id); ok {
			continue
		}
		out = append(out, id)
	}
	return out
}
