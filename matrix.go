package cvdsim

import "math"

// Matrix is a 3x3 linear map over (R, G, B). Row i yields output channel i.
type Matrix [3][3]float64

// Fixed transforms. Every row sums to 1, so grays (and white in particular) are invariant.
var (
	Identity = Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	ProtanopeMatrix = Matrix{
		{0.567, 0.433, 0},
		{0.558, 0.442, 0},
		{0, 0.242, 0.758},
	}
	DeuteranopeMatrix = Matrix{
		{0.625, 0.375, 0},
		{0.7, 0.3, 0},
		{0, 0.3, 0.7},
	}
	TritanopeMatrix = Matrix{
		{0.95, 0.05, 0},
		{0, 0.433, 0.567},
		{0, 0.475, 0.525},
	}
)

var matrices = [...]Matrix{
	Normal:      Identity,
	Protanope:   ProtanopeMatrix,
	Deuteranope: DeuteranopeMatrix,
	Tritanope:   TritanopeMatrix,
}

// RowSums returns the sum of each row.
func (m Matrix) RowSums() [3]float64 {
	var s [3]float64
	for i, row := range m {
		s[i] = row[0] + row[1] + row[2]
	}
	return s
}

// Transform maps one pixel. Each output channel is saturated to [0, 255] and rounded to the
// nearest integer, ties to even.
func (m Matrix) Transform(r, g, b uint8) (uint8, uint8, uint8) {
	var (
		fr = float64(r)
		fg = float64(g)
		fb = float64(b)
	)
	return saturate(m[0][0]*fr + m[0][1]*fg + m[0][2]*fb),
		saturate(m[1][0]*fr + m[1][1]*fg + m[1][2]*fb),
		saturate(m[2][0]*fr + m[2][1]*fg + m[2][2]*fb)
}

func saturate(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.RoundToEven(v))
	}
}
