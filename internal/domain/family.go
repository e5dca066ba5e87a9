// Package domain defines the normalized sample types for the four
// Midgard history families mirrored by this service.
package domain

// Family identifies one of the mirrored history metric families.
type Family string

const (
	FamilyDepth    Family = "depth"
	FamilySwaps    Family = "swaps"
	FamilyEarnings Family = "earnings"
	FamilyRunePool Family = "runepool"
)

// Families lists all mirrored families in scheduler launch order.
var Families = []Family{FamilyDepth, FamilySwaps, FamilyEarnings, FamilyRunePool}

// PoolScoped reports whether the family is keyed by a pool identifier.
func (f Family) PoolScoped() bool {
	return f == FamilyDepth
}

func (f Family) String() string {
	return string(f)
}
