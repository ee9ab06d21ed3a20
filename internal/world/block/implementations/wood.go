package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// WoodBehavior реализует поведение блока древесины — ствол дерева.
// Листва не перезаписывает древесину при размещении кроны.
type WoodBehavior struct{}

func (b *WoodBehavior) ID() block.BlockID {
	return block.WoodBlockID
}

func (b *WoodBehavior) Name() string {
	return "Wood"
}

func (b *WoodBehavior) Opaque() bool {
	return true
}

func (b *WoodBehavior) Solid() bool {
	return true
}

func (b *WoodBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.WoodBlockID, &WoodBehavior{})
}
