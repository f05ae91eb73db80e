package collision

import (
	"fmt"
	"slices"
)

// Space holds every collidable object ordered by slot. Objects with equal
// slots keep their insertion order.
type Space struct {
	objects  []*Object
	sentinel int
}

// NewSpace creates an empty space. Objects with a slot at or above sentinel
// are kept but never detected against.
func NewSpace(sentinel int) *Space {
	return &Space{sentinel: sentinel}
}

// Add inserts obj after every object whose slot is not greater than its own.
func (s *Space) Add(obj *Object) {
	i, _ := slices.BinarySearchFunc(s.objects, obj.Slot, func(o *Object, slot int) int {
		if o.Slot <= slot {
			return -1
		}
		return 1
	})
	obj.removed = false
	s.objects = slices.Insert(s.objects, i, obj)
}

// Remove takes obj out of the space. It is marked removed so any record
// still pointing at it is ignored by later passes.
func (s *Space) Remove(obj *Object) {
	obj.removed = true
	s.objects = slices.DeleteFunc(s.objects, func(o *Object) bool { return o == obj })
}

// Objects returns the ordered object list. Callers must not modify it.
func (s *Space) Objects() []*Object {
	return s.objects
}

func (s *Space) Len() int {
	return len(s.objects)
}

// Kind says what a collision record was made against.
type Kind uint8

const (
	KindObject Kind = iota
	KindTerrain
)

func (k Kind) String() string {
	if k == KindTerrain {
		return "terrain"
	}
	return "object"
}

// Record is one contact found by the detector. Sides are given from the
// moving object's point of view.
type Record struct {
	BaseBox   int
	TargetBox int
	Sides     Sides
	Kind      Kind
	Target    *Object
}

// TargetFace is the face of the target that the mover struck.
func (r Record) TargetFace() Sides {
	return r.Sides.Opposite()
}

// Collisions is a reusable bounded buffer of records.
type Collisions struct {
	records []Record
	limit   int
}

func NewCollisions(limit int) *Collisions {
	return &Collisions{records: make([]Record, 0, limit), limit: limit}
}

func (c *Collisions) Reset() {
	c.records = c.records[:0]
}

func (c *Collisions) Len() int {
	return len(c.records)
}

// Records returns the live records. The slice is reused after Reset.
func (c *Collisions) Records() []Record {
	return c.records
}

// Total ORs the sides of every record.
func (c *Collisions) Total() Sides {
	var s Sides
	for _, r := range c.records {
		s |= r.Sides
	}
	return s
}

func (c *Collisions) add(r Record) error {
	if len(c.records) >= c.limit {
		return fmt.Errorf("%w: limit %d", ErrCapacityExceeded, c.limit)
	}
	c.records = append(c.records, r)
	return nil
}
