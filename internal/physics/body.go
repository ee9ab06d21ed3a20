package physics

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// Body представляет движущееся тело (игрока).
// Позиция — уровень глаз в мировых координатах; тело занимает
// вертикальный отрезок [Pos.Y - Height, Pos.Y] цилиндра радиуса Radius
// (размеры заданы в конфигурации решателя).
//
// Телом владеет игровой цикл; решатель коллизий мутирует позицию,
// скорость и флаг опоры на каждом шаге.
type Body struct {
	Pos vec.Vec3Float // Позиция (метры)
	Vel vec.Vec3Float // Скорость (метры в секунду)

	Flying   bool // Режим полета: без гравитации, вертикаль от намерения
	Grounded bool // Тело опирается на твердый воксель снизу
}

// MoveIntent — абстрагированное намерение движения от слоя ввода.
// Forward/Strafe образуют горизонтальный вектор намерения (-1..1 по осям),
// Ascend действует только в полете.
type MoveIntent struct {
	Forward float64
	Strafe  float64
	Ascend  float64
	Sprint  bool
	Jump    bool
}
