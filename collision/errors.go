package collision

import "errors"

var (
	ErrNoCollisionBox   = errors.New("object has no collision box")
	ErrCapacityExceeded = errors.New("collision list capacity exceeded")
	ErrUnknownTrigger   = errors.New("no handler registered for trigger kind")
	ErrUnknownSide      = errors.New("unknown side name")
)
