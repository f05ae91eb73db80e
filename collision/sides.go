package collision

import (
	"fmt"
	"slices"
	"strings"
)

// Sides is a bitset over the six faces of a box.
type Sides uint8

const (
	SideTop Sides = 1 << iota
	SideBottom
	SideLeft
	SideRight
	SideFront
	SideBack

	AllSides    = SideTop | SideBottom | SideLeft | SideRight | SideFront | SideBack
	SidesNotTop = SideLeft | SideRight | SideFront | SideBack
)

var sideNames = [...]string{"top", "bottom", "left", "right", "front", "back"}

// Has reports whether any of o is set in s.
func (s Sides) Has(o Sides) bool {
	return s&o != 0
}

// Opposite swaps each face for the one facing it: a box that strikes with its
// Right face has crossed the target's Left face.
func (s Sides) Opposite() Sides {
	var o Sides
	pairs := [...][2]Sides{{SideTop, SideBottom}, {SideLeft, SideRight}, {SideFront, SideBack}}
	for _, p := range pairs {
		if s&p[0] != 0 {
			o |= p[1]
		}
		if s&p[1] != 0 {
			o |= p[0]
		}
	}
	return o
}

func (s Sides) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for i, name := range sideNames {
		if s&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseSides reads the form String writes. "all" and "" are accepted too;
// the empty string is no sides.
func ParseSides(s string) (Sides, error) {
	var out Sides
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(strings.ToLower(part))
		switch part {
		case "", "none":
			continue
		case "all":
			out |= AllSides
			continue
		}
		i := slices.Index(sideNames[:], part)
		if i < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownSide, part)
		}
		out |= 1 << i
	}
	return out, nil
}

// Solidity describes how an object blocks others. It is either directional,
// with a set of solid faces, or touchable, which registers any overlap without
// blocking. The zero value does not collide at all.
type Solidity struct {
	touchable bool
	sides     Sides
}

// Solid returns a directional solidity blocking on the given faces.
func Solid(sides Sides) Solidity {
	return Solidity{sides: sides & AllSides}
}

// Touchable returns the non-directional solidity used by simple triggers.
func Touchable() Solidity {
	return Solidity{touchable: true}
}

func (s Solidity) IsTouchable() bool { return s.touchable }

func (s Solidity) Sides() Sides { return s.sides }

// Collidable reports whether the detector should consider the object at all.
func (s Solidity) Collidable() bool {
	return s.touchable || s.sides != 0
}

func (s Solidity) String() string {
	if s.touchable {
		return "touchable"
	}
	return "solid(" + s.sides.String() + ")"
}
