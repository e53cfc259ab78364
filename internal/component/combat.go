package component

import "go-tower-sim/internal/types"

// DeathBehavior decides what happens when an entity's health runs out.
// It is chosen once when the entity is created.
type DeathBehavior interface {
	OnDeath(owner types.Handle)
}

// DeathFunc adapts a plain function to DeathBehavior.
type DeathFunc func(owner types.Handle)

func (f DeathFunc) OnDeath(owner types.Handle) { f(owner) }

// Health — компонент здоровья
type Health struct {
	Owner   types.Handle
	Max     float64
	Current float64
	Dead    bool
	onDeath DeathBehavior
}

func NewHealth(owner types.Handle, max float64, onDeath DeathBehavior) *Health {
	return &Health{Owner: owner, Max: max, Current: max, onDeath: onDeath}
}

// SetMaxHealth overwrites both the maximum and the current value.
func (h *Health) SetMaxHealth(value float64) {
	h.Max = value
	h.Current = value
}

// TakeDamage reduces health, clamped to [0, Max]. It reports whether this hit
// killed the entity; the death behavior runs exactly once.
func (h *Health) TakeDamage(amount float64) bool {
	if h.Dead {
		return false
	}
	h.Current = clamp(h.Current-amount, 0, h.Max)
	if h.Current > 0 {
		return false
	}
	h.Dead = true
	if h.onDeath != nil {
		h.onDeath.OnDeath(h.Owner)
	}
	return true
}

func (h *Health) Heal(amount float64) {
	if h.Dead {
		return
	}
	h.Current = clamp(h.Current+amount, 0, h.Max)
}

// HealFull restores to Max.
func (h *Health) HealFull() {
	if h.Dead {
		return
	}
	if h.Current < h.Max {
		h.Current = h.Max
	}
}

func (h *Health) Alive() bool {
	return !h.Dead
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Combat — компонент для башен, управляющий атакой
type Combat struct {
	Damage       float64 // урон за выстрел
	FireInterval float64 // секунд между выстрелами
	FireCooldown float64 // Оставшееся время до следующего выстрела
	Range        float64 // в клетках решётки
}

// Ready advances the cooldown and reports whether the weapon may fire.
func (c *Combat) Ready(deltaTime float64) bool {
	if c.FireCooldown > 0 {
		c.FireCooldown -= deltaTime
	}
	return c.FireCooldown <= 0
}

func (c *Combat) Fired() {
	c.FireCooldown = c.FireInterval
}
