package implementations

import (
	"github.com/annel0/voxel-engine/internal/world/block"
)

// GrassBehavior реализует поведение блока травы — верхний слой
// колонок вне пустынных биомов.
type GrassBehavior struct{}

// ID возвращает идентификатор блока
func (b *GrassBehavior) ID() block.BlockID {
	return block.GrassBlockID
}

// Name возвращает имя блока
func (b *GrassBehavior) Name() string {
	return "Grass"
}

// Opaque возвращает true: трава заслоняет грани соседей
func (b *GrassBehavior) Opaque() bool {
	return true
}

// Solid возвращает true: по траве можно ходить
func (b *GrassBehavior) Solid() bool {
	return true
}

// Breakable возвращает true
func (b *GrassBehavior) Breakable() bool {
	return true
}

func init() {
	block.Register(block.GrassBlockID, &GrassBehavior{})
}
