package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// SandBehavior реализует поведение блока песка — поверхность
// пустынных биомов.
type SandBehavior struct{}

func (b *SandBehavior) ID() block.BlockID {
	return block.SandBlockID
}

func (b *SandBehavior) Name() string {
	return "Sand"
}

func (b *SandBehavior) Opaque() bool {
	return true
}

func (b *SandBehavior) Solid() bool {
	return true
}

func (b *SandBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.SandBlockID, &SandBehavior{})
}
