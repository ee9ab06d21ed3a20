package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// BedrockBehavior реализует поведение бедрока — неразрушимого пола мира.
// Генератор кладет его на y=0 в каждой колонке.
type BedrockBehavior struct{}

func (b *BedrockBehavior) ID() block.BlockID {
	return block.BedrockBlockID
}

func (b *BedrockBehavior) Name() string {
	return "Bedrock"
}

func (b *BedrockBehavior) Opaque() bool {
	return true
}

func (b *BedrockBehavior) Solid() bool {
	return true
}

// Breakable возвращает false: разрушение бедрока — no-op на уровне политики
func (b *BedrockBehavior) Breakable() bool {
	return false
}

func init() {
	block.Register(block.BedrockBlockID, &BedrockBehavior{})
}
