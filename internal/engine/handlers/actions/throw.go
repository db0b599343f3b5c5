package actions

import (
	"fmt"

	"github.com/todo-knk/xibalba/internal/core/types"
	"github.com/todo-knk/xibalba/internal/core/types/enums"
	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/internal/engine/handlers"
	"github.com/todo-knk/xibalba/internal/systems"
	"github.com/todo-knk/xibalba/pkg/api"
)

// HandleThrow бросает предмет в клетку. Без itemId берётся первый метательный.
func HandleThrow(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	item, err := pickItem(ctx, p.ItemID, func(id types.EntityID) bool { return true })
	if err != nil {
		return handlers.Fail("Нечего бросить.", err)
	}
	return aim(ctx, p, item, enums.SkillUnknown)
}

// HandleFire стреляет из метательного оружия подходящим снарядом.
func HandleFire(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	w := ctx.World
	launcher, wpn, ok := rangedWeapon(w, ctx.Actor)
	if !ok {
		return handlers.Fail("У вас нет метательного оружия.", fmt.Errorf("%w: no ranged weapon", domain.ErrInvalidAction))
	}

	ammo, err := pickItem(ctx, p.ItemID, func(id types.EntityID) bool {
		a, ok := w.Ammunition.Get(id)
		return ok && id != launcher && (wpn.AmmunitionType == "" || a.Type == wpn.AmmunitionType)
	})
	if err != nil {
		return handlers.Fail("Нет подходящих снарядов.", err)
	}
	return aim(ctx, p, ammo, wpn.Skill)
}

func aim(ctx handlers.Context, p api.TargetPayload, item types.EntityID, skill enums.Skill) (handlers.Result, error) {
	cell := domain.Position{X: p.X, Y: p.Y}
	res := systems.ValidateThrow(ctx.World, ctx.Actor, item, cell, ctx.ThrowRange)
	if !res.Valid {
		return handlers.Fail(res.Message, res.Err())
	}

	target := res.Cell
	ctx.World.Ranged.Add(ctx.Actor, domain.Ranged{
		Cell:     &target,
		Item:     item,
		BodyPart: enums.ParseBodyPart(p.BodyPart),
		Skill:    skill,
	})
	return handlers.TurnResult(), nil
}

// pickItem находит предмет в инвентаре по id или первый подходящий.
func pickItem(ctx handlers.Context, rawID string, accept func(types.EntityID) bool) (types.EntityID, error) {
	if rawID != "" {
		id, err := types.ParseEntityID(rawID)
		if err != nil {
			return types.NilEntityID, fmt.Errorf("%w: %v", domain.ErrInvalidAction, err)
		}
		if !accept(id) {
			return types.NilEntityID, fmt.Errorf("%w: item %s cannot be used", domain.ErrInvalidAction, id)
		}
		return id, nil
	}
	for _, id := range systems.ThrowableItems(ctx.World, ctx.Actor) {
		if accept(id) {
			return id, nil
		}
	}
	return types.NilEntityID, fmt.Errorf("%w: nothing to throw", domain.ErrEntityNotFound)
}

func rangedWeapon(w *domain.World, actor types.EntityID) (types.EntityID, *domain.Weapon, bool) {
	inv, ok := w.Inventories.Get(actor)
	if !ok {
		return types.NilEntityID, nil, false
	}
	for _, id := range inv.Items {
		if wpn, ok := w.Weapons.Get(id); ok && wpn.Skill.IsRanged() {
			return id, wpn, true
		}
	}
	return types.NilEntityID, nil, false
}
