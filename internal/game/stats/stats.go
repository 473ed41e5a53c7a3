// Package stats holds the attribute and derived-stat value types shared by
// players, enemies, and equipment.
package stats

import "fmt"

// Attribute names one of the four allocatable attributes.
type Attribute string

const (
	Vit Attribute = "vit"
	Str Attribute = "str"
	Agi Attribute = "agi"
	Crt Attribute = "crt"
)

// AllAttributes lists attributes in allocation order.
var AllAttributes = []Attribute{Vit, Str, Agi, Crt}

// ParseAttribute maps a name to an Attribute.
func ParseAttribute(s string) (Attribute, error) {
	for _, a := range AllAttributes {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("stats: unknown attribute %q", s)
}

// Attributes is the player's allocatable attribute block.
//
// Invariant: no field is negative.
type Attributes struct {
	Vit int `json:"vit" yaml:"vit"`
	Str int `json:"str" yaml:"str"`
	Agi int `json:"agi" yaml:"agi"`
	Crt int `json:"crt" yaml:"crt"`
}

// Get returns the value of a.
func (a Attributes) Get(attr Attribute) int {
	switch attr {
	case Vit:
		return a.Vit
	case Str:
		return a.Str
	case Agi:
		return a.Agi
	case Crt:
		return a.Crt
	}
	return 0
}

// With returns a copy with delta added to attr.
func (a Attributes) With(attr Attribute, delta int) Attributes {
	switch attr {
	case Vit:
		a.Vit += delta
	case Str:
		a.Str += delta
	case Agi:
		a.Agi += delta
	case Crt:
		a.Crt += delta
	}
	return a
}

// Total returns the sum of all four attributes.
func (a Attributes) Total() int { return a.Vit + a.Str + a.Agi + a.Crt }

// MaxAllocationWeight bounds the sum of auto-allocation weights.
const MaxAllocationWeight = 5

// Allocation is the auto-allocation policy applied on every level-up.
type Allocation struct {
	Enabled bool       `json:"enabled"`
	Weights Attributes `json:"weights"`
}

// DefaultAllocation is the policy a new character starts with.
func DefaultAllocation() Allocation {
	return Allocation{Weights: Attributes{Vit: 1, Str: 2, Agi: 1, Crt: 1}}
}

// Validate checks that weights are non-negative and sum to at most MaxAllocationWeight.
func (p Allocation) Validate() error {
	for _, attr := range AllAttributes {
		if p.Weights.Get(attr) < 0 {
			return fmt.Errorf("weight for %s must be >= 0, got %d", attr, p.Weights.Get(attr))
		}
	}
	if total := p.Weights.Total(); total > MaxAllocationWeight {
		return fmt.Errorf("weights must total at most %d, got %d", MaxAllocationWeight, total)
	}
	return nil
}

// Apply distributes up to points attribute points into attrs following the
// policy weights in attribute order.
//
// Postcondition: returned spent <= points; attrs grows by exactly spent.
func (p Allocation) Apply(attrs Attributes, points int) (Attributes, int) {
	if !p.Enabled {
		return attrs, 0
	}
	spent := 0
	for _, attr := range AllAttributes {
		w := min(p.Weights.Get(attr), points-spent)
		if w <= 0 {
			continue
		}
		attrs = attrs.With(attr, w)
		spent += w
	}
	return attrs, spent
}

// Stats is a derived combat stat block. HP is the only field that carries
// state across recomputes; every other field is a pure function of its inputs.
type Stats struct {
	HP        float64 `json:"hp"`
	MaxHP     float64 `json:"maxHp"`
	HPRegen   float64 `json:"hpRegen"`
	Atk       float64 `json:"atk"`
	Def       float64 `json:"def"`
	Speed     float64 `json:"speed"`
	CritRate  float64 `json:"critRate"`
	CritDmg   float64 `json:"critDmg"`
	Dodge     float64 `json:"dodge"`
	Lifesteal float64 `json:"lifesteal"`
}

// Alive reports whether HP is above zero.
func (s Stats) Alive() bool { return s.HP > 0 }

// ClampHP bounds HP to [0, MaxHP].
func (s *Stats) ClampHP() {
	s.HP = max(0, min(s.HP, s.MaxHP))
}

// Heal adds amount to HP without exceeding MaxHP.
//
// Precondition: amount >= 0.
func (s *Stats) Heal(amount float64) {
	s.HP = min(s.MaxHP, s.HP+amount)
}

// Damage subtracts amount from HP, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: HP >= 0.
func (s *Stats) Damage(amount float64) {
	s.HP = max(0, s.HP-amount)
}
