package physics

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/annel0/voxel-engine/internal/world/block/implementations"
)

func TestCast_StraightDown(t *testing.T) {
	// Луч из (0,5,0) вниз в бедрок на (0,0,0): попадание с нормалью (0,1,0)
	store := world.NewVoxelStore()
	store.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, block.BedrockBlockID)

	ray := NewRaycaster(0.05)
	hit, ok := ray.Cast(vec.Vec3Float{X: 0, Y: 5, Z: 0}, vec.Vec3Float{Y: -1}, store, 6)

	require.True(t, ok, "Луч должен найти бедрок")
	assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 0}, hit.Voxel)
	assert.Equal(t, vec.Vec3{Y: 1}, hit.Normal, "Нормаль направлена к началу луча")
	assert.Equal(t, vec.Vec3{X: 0, Y: 1, Z: 0}, hit.Adjacent, "Клетка установки — над гранью попадания")
	assert.Equal(t, block.BedrockBlockID, hit.Kind)
}

func TestCast_HorizontalNormal(t *testing.T) {
	store := world.NewVoxelStore()
	store.Set(vec.Vec3{X: 3, Y: 0, Z: 0}, block.StoneBlockID)

	ray := NewRaycaster(0.05)
	hit, ok := ray.Cast(vec.Vec3Float{X: 0, Y: 0, Z: 0}, vec.Vec3Float{X: 1}, store, 6)

	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 3, Y: 0, Z: 0}, hit.Voxel)
	assert.Equal(t, vec.Vec3{X: -1}, hit.Normal)
	assert.Equal(t, vec.Vec3{X: 2, Y: 0, Z: 0}, hit.Adjacent)
}

func TestCast_WaterIsTransparent(t *testing.T) {
	// Вода на пути луча пропускает его к твердому блоку за ней
	store := world.NewVoxelStore()
	store.Set(vec.Vec3{X: 0, Y: 3, Z: 0}, block.WaterBlockID)
	store.Set(vec.Vec3{X: 0, Y: 2, Z: 0}, block.WaterBlockID)
	store.Set(vec.Vec3{X: 0, Y: 1, Z: 0}, block.SandBlockID)

	ray := NewRaycaster(0.05)
	hit, ok := ray.Cast(vec.Vec3Float{X: 0, Y: 6, Z: 0}, vec.Vec3Float{Y: -1}, store, 8)

	require.True(t, ok, "Луч должен пройти сквозь воду")
	assert.Equal(t, block.SandBlockID, hit.Kind)
	assert.Equal(t, vec.Vec3{X: 0, Y: 1, Z: 0}, hit.Voxel)
}

func TestCast_OnlyWaterReturnsNone(t *testing.T) {
	store := world.NewVoxelStore()
	for y := 0; y <= 4; y++ {
		store.Set(vec.Vec3{X: 0, Y: y, Z: 0}, block.WaterBlockID)
	}

	ray := NewRaycaster(0.05)
	_, ok := ray.Cast(vec.Vec3Float{X: 0, Y: 6, Z: 0}, vec.Vec3Float{Y: -1}, store, 8)
	assert.False(t, ok, "Только вода и пустота на пути — цели нет")
}

func TestCast_MaxDistanceExhausted(t *testing.T) {
	// Исчерпание дистанции без попадания — нормальный исход, а не ошибка
	store := world.NewVoxelStore()
	store.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, block.StoneBlockID)

	ray := NewRaycaster(0.05)
	_, ok := ray.Cast(vec.Vec3Float{X: 0, Y: 10, Z: 0}, vec.Vec3Float{Y: -1}, store, 3)
	assert.False(t, ok)
}

func TestCast_ZeroDirection(t *testing.T) {
	store := world.NewVoxelStore()
	ray := NewRaycaster(0.05)
	_, ok := ray.Cast(vec.Vec3Float{}, vec.Vec3Float{}, store, 6)
	assert.False(t, ok, "Нулевое направление не дает цели")
}
