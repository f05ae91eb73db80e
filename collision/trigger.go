package collision

import "fmt"

// Trigger handles contact between a mover and a trigger object. It returns
// whether the trigger should still behave as a solid object for this contact.
type Trigger interface {
	Touch(trigger, who *Object, sides Sides) bool
}

// TriggerFunc adapts a plain function to Trigger.
type TriggerFunc func(trigger, who *Object, sides Sides) bool

func (f TriggerFunc) Touch(trigger, who *Object, sides Sides) bool {
	return f(trigger, who, sides)
}

// Triggers maps trigger kinds to their handlers.
type Triggers map[TriggerKind]Trigger

// Register installs h for kind, replacing any previous handler.
func (t Triggers) Register(kind TriggerKind, h Trigger) {
	t[kind] = h
}

var triggerOrder = [...]Sides{SideBack, SideFront, SideLeft, SideRight, SideTop, SideBottom}

// Handle dispatches a contact between who and trigger. sides are the mover's
// faces that struck the trigger. A touchable trigger always fires. A
// directional trigger fires only when the first struck face meets one of its
// TriggerSides; otherwise it stays solid.
func (t Triggers) Handle(trigger, who *Object, sides Sides) (bool, error) {
	h, ok := t[trigger.Kind]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTrigger, trigger.Kind)
	}

	if trigger.Solidity.IsTouchable() {
		return h.Touch(trigger, who, sides), nil
	}

	for _, side := range triggerOrder {
		if !sides.Has(side) {
			continue
		}
		if trigger.TriggerSides.Has(side.Opposite()) {
			return h.Touch(trigger, who, sides), nil
		}
		return true, nil
	}
	return true, nil
}
