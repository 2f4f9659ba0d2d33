package system

import (
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
)

// IntentSystem refreshes every character's intent from its source. Characters
// without a source keep whatever intent was set on them.
type IntentSystem struct{}

func NewIntentSystem() *IntentSystem {
	return &IntentSystem{}
}

func (i *IntentSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.ForEach(func(_ ecs.Entity, c *component.Character) {
		if c == nil || c.Links.Source == nil {
			return
		}
		c.Intent = c.Links.Source.Poll()
	})
}
