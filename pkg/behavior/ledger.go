package behavior

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
)

// Category groups steering forces so that conflicting behaviours can be resolved.
type Category uint8

const (
	CategorySeek Category = iota
	CategoryArrive
	CategoryAvoid
	CategorySineWave
	// CategoryDodge holds threat dodges; unlike avoid it never suppresses pursuit.
	CategoryDodge
	CategoryBrake

	numCategories
)

func (c Category) String() string {
	switch c {
	case CategorySeek:
		return "seek"
	case CategoryArrive:
		return "arrive"
	case CategoryAvoid:
		return "avoid"
	case CategorySineWave:
		return "sineWave"
	case CategoryDodge:
		return "dodge"
	case CategoryBrake:
		return "brake"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Force is one contribution recorded in the ledger.
type Force struct {
	Category Category
	Key      Kind
	Vector   geometry.Vector2D
}

// Ledger records every steering force produced during one tick.
// Entries keep insertion order so the final sum is reproducible bit for bit.
type Ledger struct {
	forces []Force
	acted  [numCategories][numKinds]bool
	has    [numCategories]bool
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{forces: make([]Force, 0, 16)}
}

// Reset clears the ledger for a new tick.
func (l *Ledger) Reset() {
	l.forces = l.forces[:0]
	l.acted = [numCategories][numKinds]bool{}
	l.has = [numCategories]bool{}
}

// Add appends a force under category and key.
func (l *Ledger) Add(v geometry.Vector2D, category Category, key Kind) {
	l.forces = append(l.forces, Force{Category: category, Key: key, Vector: v})
	l.Mark(category, key)
}

// Mark flags that something happened for (category, key) without adding a vector.
func (l *Ledger) Mark(category Category, key Kind) {
	if category >= numCategories || key >= numKinds {
		return
	}
	l.acted[category][key] = true
	l.has[category] = true
}

// Acted reports whether anything was recorded for (category, key) this tick.
func (l *Ledger) Acted(category Category, key Kind) bool {
	if category >= numCategories || key >= numKinds {
		return false
	}
	return l.acted[category][key]
}

// Has reports whether any entry exists in category.
func (l *Ledger) Has(category Category) bool {
	return category < numCategories && l.has[category]
}

// Forces returns the raw entries recorded this tick.
func (l *Ledger) Forces() []Force {
	return l.forces
}

// Len is the number of recorded entries.
func (l *Ledger) Len() int {
	return len(l.forces)
}

// Survivors returns the entries kept after precedence rules:
// avoidance discards seek and arrive; otherwise a landing pad under seek or
// arrive discards every other key in those two categories.
func (l *Ledger) Survivors() []Force {
	avoiding := l.hasVector(CategoryAvoid, anyKind)
	landing := !avoiding && (l.hasVector(CategorySeek, KindLandingPad) || l.hasVector(CategoryArrive, KindLandingPad))

	out := make([]Force, 0, len(l.forces))
	for _, f := range l.forces {
		pursuit := f.Category == CategorySeek || f.Category == CategoryArrive
		switch {
		case pursuit && avoiding:
			continue
		case pursuit && landing && f.Key != KindLandingPad:
			continue
		}
		out = append(out, f)
	}
	return out
}

// Resolve sums the surviving entries into one acceleration vector.
func (l *Ledger) Resolve() geometry.Vector2D {
	var sum geometry.Vector2D
	for _, f := range l.Survivors() {
		sum = sum.Add(f.Vector)
	}
	return sum
}

// Apply resolves the ledger, adds the acceleration to the craft's velocity and
// clamps the velocity to its per-axis maximums. It returns the acceleration.
func (l *Ledger) Apply(c *Craft) geometry.Vector2D {
	acc := l.Resolve()
	c.Vel = c.Vel.Add(acc)
	c.ClampVelocity()
	c.Face()
	return acc
}

// anyKind matches every key in hasVector.
const anyKind = numKinds

// hasVector reports an entry carrying a vector for (category, key).
// Marks do not count.
func (l *Ledger) hasVector(category Category, key Kind) bool {
	for _, f := range l.forces {
		if f.Category == category && (key == anyKind || f.Key == key) {
			return true
		}
	}
	return false
}
