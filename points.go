package spatialign

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/transform"
)

// applyPoints transforms every row of a coordinate table, leaving
// non-coordinate columns untouched. Point data carries no discretization
// artifact, so no translation correction is produced.
func (e *Engine) applyPoints(p *model.PointTable, t transform.Transform) (*model.PointTable, error) {
	axes := p.AxesNames()
	matrix, err := t.Matrix(axes, axes)
	if err != nil {
		return nil, err
	}

	pts := mat.NewDense(p.Len(), p.Dim(), append([]float64(nil), p.Coords()...))
	mapped := transform.ApplyMatrix(matrix, pts)

	coords := make([]float64, p.Len()*p.Dim())
	for i := 0; i < p.Len(); i++ {
		for j := 0; j < p.Dim(); j++ {
			coords[i*p.Dim()+j] = mapped.At(i, j)
		}
	}

	out, err := model.NewPointTable(coords, p.Len(), axes)
	if err != nil {
		return nil, err
	}
	for _, name := range p.AttrNames() {
		col, _ := p.Attr(name)
		if err := out.SetAttr(name, append([]float64(nil), col...)); err != nil {
			return nil, err
		}
	}
	out.Transformations().Reset(e.cfg.DefaultCoordinateSystem)
	return out, nil
}
