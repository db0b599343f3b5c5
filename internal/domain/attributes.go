package domain

// Attributes — характеристики актёра. Energy тратится действиями
// и пополняется на Speed в конце каждого хода.
type Attributes struct {
	Name        string
	Description string
	Speed       int
	Vision      int
	MaxHealth   int
	Health      int
	Toughness   int
	Damage      int
	Energy      int
}

// NewAttributes заполняет здоровье и стартовую энергию (равна скорости).
func NewAttributes(name string, speed, vision, maxHealth, toughness, damage int) Attributes {
	return Attributes{
		Name:      name,
		Speed:     speed,
		Vision:    vision,
		MaxHealth: maxHealth,
		Health:    maxHealth,
		Toughness: toughness,
		Damage:    damage,
		Energy:    speed,
	}
}

// CanAfford — проверка энергии перед действием.
func (a *Attributes) CanAfford(cost int) bool {
	return a.Energy >= cost
}

// Spend списывает энергию только после успешной проверки.
func (a *Attributes) Spend(cost int) error {
	if !a.CanAfford(cost) {
		return ErrInvalidAction
	}
	a.Energy -= cost
	return nil
}

// Regenerate — пополнение энергии в конце хода.
func (a *Attributes) Regenerate() {
	a.Energy += a.Speed
}

// TakeDamage наносит урон. Возвращает true, если цель погибла именно сейчас.
func (a *Attributes) TakeDamage(amount int) bool {
	if a.IsDead() {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	a.Health -= amount
	if a.Health <= 0 {
		a.Health = 0
		return true
	}
	return false
}

func (a *Attributes) Heal(amount int) {
	if a.IsDead() {
		return
	}
	a.Health += amount
	if a.Health > a.MaxHealth {
		a.Health = a.MaxHealth
	}
}

func (a *Attributes) IsDead() bool {
	return a.Health <= 0
}
