package fx

// DefaultMaxEffects is the capacity used by NewEngine
const DefaultMaxEffects = 64

// Registry is a bounded, insertion ordered collection of effects.  An effect
// keeps the index it was given when added for the lifetime of the registry.
type Registry struct {
	effects []Effect
}

// NewRegistry creates an empty registry able to hold up to maxEffects effects.
// A maxEffects below 1 is raised to 1.
func NewRegistry(maxEffects int) (reg *Registry) {
	if maxEffects < 1 {
		maxEffects = 1
	}
	return &Registry{
		effects: make([]Effect, 0, maxEffects),
	}
}

// Add appends an effect, returning false without modifying the registry when
// it is already full or the effect is nil
func (reg *Registry) Add(effect Effect) bool {
	if effect == nil || len(reg.effects) >= cap(reg.effects) {
		return false
	}
	reg.effects = append(reg.effects, effect)
	return true
}

// At returns the effect at idx, or nil if idx is out of range
func (reg *Registry) At(idx int) Effect {
	if idx < 0 || idx >= len(reg.effects) {
		return nil
	}
	return reg.effects[idx]
}

// Len is the number of registered effects
func (reg *Registry) Len() int {
	return len(reg.effects)
}

// Cap is the maximum number of effects the registry will accept
func (reg *Registry) Cap() int {
	return cap(reg.effects)
}

// Empty reports whether no effects have been registered
func (reg *Registry) Empty() bool {
	return len(reg.effects) == 0
}
