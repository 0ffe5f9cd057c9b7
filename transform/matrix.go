package transform

import (
	"gonum.org/v1/gonum/mat"
)

// ApplyMatrix maps the n x d coordinate rows of pts through the homogeneous
// matrix m, which must have d+1 columns. It returns the n x dOut
// transformed rows, where dOut is one less than the row count of m.
// ApplyMatrix is pure linear algebra; it panics on dimension mismatch.
func ApplyMatrix(m *mat.Dense, pts *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	n, d := pts.Dims()
	if d != cols-1 {
		panic("transform: point dimension does not match matrix")
	}
	homo := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			homo.Set(i, j, pts.At(i, j))
		}
		homo.Set(i, cols-1, 1)
	}
	var out mat.Dense
	out.Mul(homo, m.T())
	return mat.DenseCopyOf(out.Slice(0, n, 0, rows-1))
}

// MapPoint maps a single point through the homogeneous matrix m.
func MapPoint(m *mat.Dense, p []float64) []float64 {
	rows, cols := m.Dims()
	if len(p) != cols-1 {
		panic("transform: point dimension does not match matrix")
	}
	out := make([]float64, rows-1)
	for i := range out {
		v := m.At(i, cols-1)
		for j, x := range p {
			v += m.At(i, j) * x
		}
		out[i] = v
	}
	return out
}
