package collision

// CType is a capability mask describing what an object is.
type CType uint32

const (
	CTypePlayer  CType = 1 << iota
	CTypeAvoid         // CPU drivers steer around it
	CTypeViscous       // slows whatever touches it
	CTypeTrigger
	CTypeMisc
	CTypeTerrain // not carried by objects; asks the resolver to clamp to the ground
	CTypeLiquid
	CTypeImpenetrable  // wins position correction over everything else
	CTypeImpenetrable2 // with Impenetrable: do not snap submarines back on contact
)

// PlayerMask is what land vehicles and submarines collide against.
const PlayerMask = CTypePlayer | CTypeMisc | CTypeTrigger | CTypeLiquid | CTypeViscous

// Has reports whether any bit of o is set in c.
func (c CType) Has(o CType) bool {
	return c&o != 0
}
