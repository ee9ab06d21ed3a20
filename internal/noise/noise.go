package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Field представляет детерминированный 2D-источник шума Перлина.
// В отличие от глобального генератора, каждый Field несет собственный сид,
// поэтому несколько независимых каналов (высота, биомы, деревья) не коррелируют.
type Field struct {
	p *perlin.Perlin
}

// NewField создает источник шума для указанного сида
func NewField(seed int64) *Field {
	alpha := 2.0 // Сглаживание шума
	beta := 2.0  // Частота шума
	// Одна октава: фрактальную сумму считает FBM, а не библиотека
	return &Field{
		p: perlin.NewPerlin(alpha, beta, 1, seed),
	}
}

// Sample возвращает значение шума в диапазоне [-1, 1].
// Функция чистая: одинаковые входы всегда дают одинаковый результат.
func (f *Field) Sample(x, z float64) float64 {
	v := f.p.Noise2D(x, z)
	return math.Max(-1.0, math.Min(1.0, v))
}

// FBM суммирует октавы шума с растущей частотой и убывающей амплитудой
// (fractal Brownian motion). Результат нормирован суммарной амплитудой
// и остается в диапазоне [-1, 1].
type FBM struct {
	Field      *Field
	Octaves    int     // Количество октав
	Lacunarity float64 // Множитель частоты на октаву
	Gain       float64 // Множитель амплитуды на октаву
}

// NewFBM создает фрактальный сумматор с типовыми параметрами ландшафта
func NewFBM(field *Field, octaves int) *FBM {
	return &FBM{
		Field:      field,
		Octaves:    octaves,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

// Sample возвращает нормированную фрактальную сумму октав в точке (x, z)
func (f *FBM) Sample(x, z float64) float64 {
	sum := 0.0
	total := 0.0
	amplitude := 1.0
	frequency := 1.0

	for i := 0; i < f.Octaves; i++ {
		sum += amplitude * f.Field.Sample(x*frequency, z*frequency)
		total += amplitude
		amplitude *= f.Gain
		frequency *= f.Lacunarity
	}

	if total == 0 {
		return 0
	}
	return sum / total
}
