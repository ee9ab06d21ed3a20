package world

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/annel0/voxel-engine/internal/noise"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// BiomeType представляет тип биома
type BiomeType int

const (
	BiomePlains BiomeType = iota
	BiomeDesert
	BiomeForest
)

// Пороги классификации биомов по значению шумового канала
const (
	DesertThreshold = -0.3 // Ниже — пустыня
	ForestThreshold = 0.3  // Выше — лес
)

// Пороги канала деревьев: в лесу порог мягче, чем на равнинах
const (
	ForestTreeThreshold = 0.4
	PlainsTreeThreshold = 0.7
)

// TerrainGenerator генерирует ландшафт мира из трех независимых
// шумовых каналов: высота, биомы и размещение деревьев.
// Генерация детерминирована: один сид — битово идентичный мир.
type TerrainGenerator struct {
	Seed          int64   // Сид для генерации шума
	SeaLevel      int     // Уровень моря: ниже него колонки заливаются водой
	NoiseScale    float64 // Масштаб основного шума (высота)
	MountainScale float64 // Масштаб низкочастотного шума горных хребтов
	BiomeScale    float64 // Масштаб шума биомов
	FeatureScale  float64 // Масштаб шума деревьев

	elevation *noise.FBM
	mountains *noise.FBM
	biomes    *noise.Field
	features  *noise.Field
}

// treeSite — колонка, в которой запланировано дерево.
// Деревья ставятся пост-проходом, когда все колонки уже существуют,
// чтобы стволы и кроны перезаписывали ландшафт, а не наоборот.
type treeSite struct {
	x, z    int
	ground  int     // Высота поверхности колонки
	feature float64 // Значение канала деревьев (задает высоту ствола)
}

// NewTerrainGenerator создаёт генератор мира для указанного сида.
// Каналы шума сидируются независимо, поэтому их узоры не коррелируют.
func NewTerrainGenerator(seed int64, seaLevel int) *TerrainGenerator {
	elevField := noise.NewField(seed)

	return &TerrainGenerator{
		Seed:          seed,
		SeaLevel:      seaLevel,
		NoiseScale:    0.05, // Настройка сглаженности ландшафта
		MountainScale: 0.01, // Хребты крупнее обычных холмов
		BiomeScale:    0.02, // Настройка размера биомов
		FeatureScale:  0.35,
		elevation:     noise.NewFBM(elevField, 4),
		mountains:     noise.NewFBM(noise.NewField(seed+7), 2),
		biomes:        noise.NewField(seed + 42),
		features:      noise.NewField(seed + 1337),
	}
}

// Generate строит воксельный мир в кубоиде колонок [-radius, radius).
// Вызывается ровно один раз за сессию, синхронно; возвращает заполненное
// хранилище и карту высот колонок.
func (g *TerrainGenerator) Generate(ctx context.Context, radius int) (*VoxelStore, HeightMap) {
	_, span := otel.Tracer("world").Start(ctx, "terrain.generate")
	defer span.End()

	started := time.Now()
	store := NewVoxelStore()
	heights := make(HeightMap, (2*radius)*(2*radius))
	var trees []treeSite

	for x := -radius; x < radius; x++ {
		for z := -radius; z < radius; z++ {
			g.generateColumn(store, heights, &trees, x, z)
		}
	}

	// Пост-проход: деревья перезаписывают ландшафт, но не друг друга
	for _, site := range trees {
		g.placeTree(store, site)
	}

	generationDuration.Observe(time.Since(started).Seconds())
	generatedVoxels.Set(float64(store.Size()))

	return store, heights
}

// generateColumn заполняет одну колонку (x, z) и решает, сажать ли в ней дерево
func (g *TerrainGenerator) generateColumn(store *VoxelStore, heights HeightMap, trees *[]treeSite, x, z int) {
	fx := float64(x)
	fz := float64(z)

	// Высота: фрактальный рельеф плюс низкочастотные хребты.
	// Отрицательная часть горного канала отбрасывается, чтобы хребты
	// поднимали отдельные области, а не весь ландшафт.
	elev := g.elevation.Sample(fx*g.NoiseScale, fz*g.NoiseScale)
	mountain := math.Max(0, g.mountains.Sample(fx*g.MountainScale, fz*g.MountainScale))
	height := int(math.Floor(6*elev + 8 + mountain*8))

	biome := g.biomeAt(fx, fz)

	// Слои колонки: верхний блок, три блока подповерхности, ниже — камень
	for y := 1; y <= height; y++ {
		var id block.BlockID
		switch {
		case y == height:
			id = g.surfaceBlock(biome)
		case y >= height-3:
			id = g.subsurfaceBlock(biome)
		default:
			id = block.StoneBlockID
		}
		store.Set(vec.Vec3{X: x, Y: y, Z: z}, id)
	}

	// Пол мира: y=0 всегда бедрок
	store.Set(vec.Vec3{X: x, Y: 0, Z: z}, block.BedrockBlockID)

	// Низины заливаются водой до уровня моря; записанная высота колонки
	// поднимается до уровня моря, сам рельеф под водой не меняется
	recorded := height
	if height < g.SeaLevel {
		for y := height + 1; y <= g.SeaLevel; y++ {
			store.Set(vec.Vec3{X: x, Y: y, Z: z}, block.WaterBlockID)
		}
		recorded = g.SeaLevel
	}
	heights[vec.Vec2{X: x, Z: z}] = recorded

	// Планирование дерева: не в пустыне, не ниже уровня моря,
	// канал деревьев выше порога биома
	if recorded >= g.SeaLevel && biome != BiomeDesert {
		feature := g.features.Sample(fx*g.FeatureScale, fz*g.FeatureScale)
		threshold := PlainsTreeThreshold
		if biome == BiomeForest {
			threshold = ForestTreeThreshold
		}
		if feature > threshold {
			*trees = append(*trees, treeSite{x: x, z: z, ground: recorded, feature: feature})
		}
	}
}

// biomeAt классифицирует биом колонки по выделенному шумовому каналу
func (g *TerrainGenerator) biomeAt(fx, fz float64) BiomeType {
	v := g.biomes.Sample(fx*g.BiomeScale, fz*g.BiomeScale)
	switch {
	case v < DesertThreshold:
		return BiomeDesert
	case v > ForestThreshold:
		return BiomeForest
	default:
		return BiomePlains
	}
}

// surfaceBlock возвращает верхний блок колонки для биома
func (g *TerrainGenerator) surfaceBlock(biome BiomeType) block.BlockID {
	if biome == BiomeDesert {
		return block.SandBlockID
	}
	return block.GrassBlockID
}

// subsurfaceBlock возвращает блок подповерхностного слоя для биома
func (g *TerrainGenerator) subsurfaceBlock(biome BiomeType) block.BlockID {
	if biome == BiomeDesert {
		return block.SandBlockID
	}
	return block.DirtBlockID
}

// placeTree ставит дерево: ствол из древесины начиная с блока над землей
// и сферическую крону радиуса 2 у вершины ствола. Листва никогда
// не перезаписывает древесину; дополнительный лист кладется над макушкой кроны.
func (g *TerrainGenerator) placeTree(store *VoxelStore, site treeSite) {
	const crownRadius = 2

	trunkHeight := 4 + int(math.Floor(math.Abs(site.feature)*3))
	trunkBase := site.ground + 1
	trunkTop := site.ground + trunkHeight

	for y := trunkBase; y <= trunkTop; y++ {
		store.Set(vec.Vec3{X: site.x, Y: y, Z: site.z}, block.WoodBlockID)
	}

	// Крона: евклидова сфера радиуса crownRadius+0.5 вокруг вершины ствола
	center := vec.Vec3{X: site.x, Y: trunkTop, Z: site.z}
	for dx := -crownRadius; dx <= crownRadius; dx++ {
		for dy := -crownRadius; dy <= crownRadius; dy++ {
			for dz := -crownRadius; dz <= crownRadius; dz++ {
				dist := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
				if dist > float64(crownRadius)+0.5 {
					continue
				}
				pos := vec.Vec3{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				if id, exists := store.Get(pos); exists && id == block.WoodBlockID {
					continue
				}
				store.Set(pos, block.LeavesBlockID)
			}
		}
	}

	// Один лист прямо над макушкой сферы
	store.Set(vec.Vec3{X: center.X, Y: center.Y + crownRadius + 1, Z: center.Z}, block.LeavesBlockID)
}
