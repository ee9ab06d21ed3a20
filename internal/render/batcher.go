package render

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// InstanceBatches — списки открытых позиций, сгруппированные по виду блока.
// Каждый вид соответствует одному материалу, поэтому рендер строит
// по одному набору инстансов на вид.
type InstanceBatches map[block.BlockID][]vec.Vec3

// Смещения шести граней вокселя
var faceOffsets = [6]vec.Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// VisibilityBatcher выводит батчи рендер-инстансов из хранилища через
// анализ открытости граней. Результат мемоизируется по ревизии хранилища;
// мутации мира дополнительно помечают кэш грязным через событие block.changed
// на шине — явное уведомление вместо неявного пересчета.
type VisibilityBatcher struct {
	mu        sync.Mutex
	store     *world.VoxelStore
	cached    InstanceBatches
	cachedRev uint64
	dirty     bool
}

// NewVisibilityBatcher создает батчер над хранилищем и подписывает его
// на события мутаций, если шина передана.
func NewVisibilityBatcher(store *world.VoxelStore, bus eventbus.EventBus) *VisibilityBatcher {
	b := &VisibilityBatcher{
		store: store,
		dirty: true,
	}

	if bus != nil {
		// Ошибка подписки невозможна для in-memory шины; мемоизация по
		// ревизии в любом случае перекрывает пропущенное уведомление.
		_, _ = bus.Subscribe(context.Background(), eventbus.Filter{
			Types: []string{eventbus.EventTypeBlockChanged},
		}, func(ctx context.Context, ev *eventbus.Envelope) {
			b.Invalidate()
		})
	}

	return b
}

// Invalidate помечает кэш грязным; следующий вызов Batches пересчитает батчи
func (b *VisibilityBatcher) Invalidate() {
	b.mu.Lock()
	b.dirty = true
	b.mu.Unlock()
}

// Batches возвращает текущие батчи, пересчитывая их только если хранилище
// изменилось с прошлого вызова.
func (b *VisibilityBatcher) Batches() InstanceBatches {
	b.mu.Lock()
	defer b.mu.Unlock()

	rev := b.store.Revision()
	if b.cached != nil && !b.dirty && rev == b.cachedRev {
		return b.cached
	}

	b.cached = Compute(b.store)
	b.cachedRev = rev
	b.dirty = false
	return b.cached
}

// Compute строит батчи с нуля: воксель попадает в батч своего вида, если
// открыта хотя бы одна из шести граней. Тест консервативный — воксели за
// прозрачными гранями включаются, зато предикат локальный и без обхода
// видимости от камеры. Стоимость O(количество вокселей).
func Compute(store *world.VoxelStore) InstanceBatches {
	_, span := otel.Tracer("render").Start(context.Background(), "visibility.compute")
	defer span.End()

	timer := startRecomputeTimer()
	defer timer.ObserveDuration()

	batches := make(InstanceBatches)
	store.ForEach(func(pos vec.Vec3, id block.BlockID) {
		if Exposed(store, pos) {
			batches[id] = append(batches[id], pos)
		}
	})
	return batches
}

// Exposed сообщает, открыта ли хотя бы одна грань вокселя: сосед по грани
// отсутствует или не заслоняет (стекло, вода, листва).
func Exposed(store *world.VoxelStore, pos vec.Vec3) bool {
	for _, off := range faceOffsets {
		neighbor, exists := store.Get(pos.Add(off))
		if !exists || !block.IsOpaque(neighbor) {
			return true
		}
	}
	return false
}
