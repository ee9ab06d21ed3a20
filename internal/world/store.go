package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// VoxelStore — разреженное отображение целочисленной координаты в вид блока.
// Единственный источник истины о мире. Координаты не ограничены: любая
// целочисленная тройка допустима, отсутствие ключа означает воздух.
//
// Хранилище — «глупый контейнер»: политика (неразрушимость бедрока,
// запрет установки в занятые клетки) живет в игровом слое, который его вызывает.
// Доступ не синхронизирован: дисциплина «один писатель на кадр» обеспечивается
// игровым циклом.
type VoxelStore struct {
	blocks   map[vec.Vec3]block.BlockID
	revision uint64 // Монотонный счетчик мутаций для мемоизации потребителей
}

// NewVoxelStore создает пустое хранилище
func NewVoxelStore() *VoxelStore {
	return &VoxelStore{
		blocks: make(map[vec.Vec3]block.BlockID),
	}
}

// Get возвращает вид блока в указанной позиции.
// Второе значение false означает воздух, а не ошибку.
func (s *VoxelStore) Get(pos vec.Vec3) (block.BlockID, bool) {
	id, exists := s.blocks[pos]
	return id, exists
}

// Set устанавливает блок в указанной позиции. Диапазон координат не проверяется.
func (s *VoxelStore) Set(pos vec.Vec3, id block.BlockID) {
	s.blocks[pos] = id
	s.revision++
}

// Remove удаляет блок из указанной позиции. Удаление отсутствующего блока — no-op.
func (s *VoxelStore) Remove(pos vec.Vec3) {
	if _, exists := s.blocks[pos]; !exists {
		return
	}
	delete(s.blocks, pos)
	s.revision++
}

// Size возвращает количество блоков в хранилище
func (s *VoxelStore) Size() int {
	return len(s.blocks)
}

// Revision возвращает текущий счетчик мутаций.
// Потребители (батчер видимости) мемоизируют результаты по этому значению.
func (s *VoxelStore) Revision() uint64 {
	return s.revision
}

// ForEach вызывает fn для каждого блока хранилища.
// Порядок обхода не определен.
func (s *VoxelStore) ForEach(fn func(pos vec.Vec3, id block.BlockID)) {
	for pos, id := range s.blocks {
		fn(pos, id)
	}
}
