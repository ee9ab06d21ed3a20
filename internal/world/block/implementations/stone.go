package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// StoneBehavior реализует поведение блока камня — основная порода
// ниже слоя земли.
type StoneBehavior struct{}

func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

func (b *StoneBehavior) Name() string {
	return "Stone"
}

func (b *StoneBehavior) Opaque() bool {
	return true
}

func (b *StoneBehavior) Solid() bool {
	return true
}

func (b *StoneBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.StoneBlockID, &StoneBehavior{})
}
