package domain

// Стоимость действий в единицах энергии.
const (
	CostMove   = 100
	CostMelee  = 100
	CostRanged = 100
)

const (
	// ActivationThreshold — сколько энергии нужно ИИ, чтобы решиться на действие.
	ActivationThreshold = 100

	DefaultVisionRadius = 8
	PlayerSpeed         = 100

	// LightFloor — минимальная яркость открытой, но не освещённой клетки при отрисовке.
	LightFloor = 0.4

	// MaxPlacementAttempts — лимит случайных проб при поиске клетки для спавна.
	MaxPlacementAttempts = 500

	// MaxWallNeighbours — у клетки для входа/выхода должно быть меньше стен вокруг.
	MaxWallNeighbours = 4
)
