package systems

import "github.com/todo-knk/xibalba/internal/domain"

// Rules — настраиваемые константы систем.
type Rules struct {
	// ActivationThreshold — минимум энергии, при котором ИИ вообще что-то решает.
	ActivationThreshold int

	MoveCost   int
	MeleeCost  int
	RangedCost int

	// RequireLineOfSight — ИИ замечает игрока только при прямой видимости.
	RequireLineOfSight bool
}

func DefaultRules() Rules {
	return Rules{
		ActivationThreshold: domain.ActivationThreshold,
		MoveCost:            domain.CostMove,
		MeleeCost:           domain.CostMelee,
		RangedCost:          domain.CostRanged,
	}
}
