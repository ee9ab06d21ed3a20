package physics

import (
	"math"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// BlockGetter — минимальный доступ к хранилищу для маршировки луча
type BlockGetter interface {
	Get(pos vec.Vec3) (block.BlockID, bool)
}

// PickResult — результат пика: воксель-цель, соседняя клетка со стороны
// попадания (для установки блока) и единичная нормаль грани.
// Значение переходное: создается заново на каждый запрос и не хранится.
type PickResult struct {
	Voxel    vec.Vec3      // Координата вокселя-цели
	Adjacent vec.Vec3      // Клетка сразу за гранью попадания
	Normal   vec.Vec3      // Единичная нормаль грани, направлена к началу луча
	Kind     block.BlockID // Вид блока в цели
}

// Raycaster марширует луч через хранилище фиксированным шагом.
// Подход с постоянным шагом меняет немного точности (погрешность ограничена
// шагом) на простоту реализации по сравнению с точным обходом сетки.
type Raycaster struct {
	Step float64 // Размер шага маршировки в мировых единицах
}

// NewRaycaster создает маршировщик с указанным шагом
func NewRaycaster(step float64) *Raycaster {
	return &Raycaster{Step: step}
}

// Cast продвигает точку вдоль нормализованного направления до maxDistance,
// округляя ее до ближайшего вокселя. Когда округленная координата меняется,
// хранилище опрашивается по новой координате: первый блок любого вида,
// кроме воды, дает попадание. Вода для пика не существует: ее нельзя
// выбрать, разрушить или использовать как опору для установки.
// Второе значение false означает «нет цели» — нормальный исход.
func (r *Raycaster) Cast(origin, direction vec.Vec3Float, store BlockGetter, maxDistance float64) (PickResult, bool) {
	dir := direction.Normalize()
	if dir.Length() == 0 {
		return PickResult{}, false
	}

	prev := origin.Round()
	for t := r.Step; t <= maxDistance; t += r.Step {
		current := origin.Add(dir.Scale(t)).Round()
		if current.Equals(prev) {
			continue
		}

		if id, exists := store.Get(current); exists && id != block.WaterBlockID {
			normal := faceNormal(prev, current)
			return PickResult{
				Voxel:    current,
				Adjacent: current.Add(normal),
				Normal:   normal,
				Kind:     id,
			}, true
		}
		prev = current
	}

	return PickResult{}, false
}

// faceNormal выводит нормаль грани из смены воксельной координаты:
// берется ось с наибольшей величиной изменения (при равенстве — x, затем y,
// затем z), знак обращен к началу луча.
func faceNormal(prev, current vec.Vec3) vec.Vec3 {
	dx := current.X - prev.X
	dy := current.Y - prev.Y
	dz := current.Z - prev.Z

	ax, ay, az := math.Abs(float64(dx)), math.Abs(float64(dy)), math.Abs(float64(dz))

	switch {
	case ax >= ay && ax >= az:
		return vec.Vec3{X: -sign(dx)}
	case ay >= az:
		return vec.Vec3{Y: -sign(dy)}
	default:
		return vec.Vec3{Z: -sign(dz)}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
