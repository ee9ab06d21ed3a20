package world

import "github.com/annel0/voxel-engine/internal/vec"

// HeightMap — вспомогательная карта высот колонок (X, Z) → высота поверхности.
// Строится только во время генерации для решений о заливке водой и посадке
// деревьев; после финализации хранилища ее можно отбросить.
type HeightMap map[vec.Vec2]int

// Height возвращает записанную высоту колонки
func (h HeightMap) Height(x, z int) (int, bool) {
	height, exists := h[vec.Vec2{X: x, Z: z}]
	return height, exists
}
