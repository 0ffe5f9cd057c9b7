package spatialign

import (
	"fmt"
	"sort"

	"github.com/tsawler/spatialign/model"
)

// Dataset aggregates named spatial entities into the four conventional
// groups: images, labels, points, and shapes. Images and labels may be
// single rasters or multiscale pyramids.
type Dataset struct {
	images  map[string]model.Element
	labels  map[string]model.Element
	points  map[string]*model.PointTable
	shapes  map[string]*model.ShapeCollection
	systems *model.SystemSet
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		images:  make(map[string]model.Element),
		labels:  make(map[string]model.Element),
		points:  make(map[string]*model.PointTable),
		shapes:  make(map[string]*model.ShapeCollection),
		systems: model.NewSystemSet(),
	}
}

// CoordinateSystems returns the dataset's coordinate-system registrations.
func (d *Dataset) CoordinateSystems() *model.SystemSet { return d.systems }

// RegisterSystem registers a coordinate system; registering a different
// axis list under an existing name fails.
func (d *Dataset) RegisterSystem(cs model.CoordinateSystem) error {
	return d.systems.Register(cs)
}

func rasterKindOf(el model.Element) (model.RasterKind, bool) {
	switch v := el.(type) {
	case *model.Raster:
		return v.RasterKind(), true
	case *model.Multiscale:
		return v.Level(0).RasterKind(), true
	}
	return 0, false
}

// AddImage adds a raster or multiscale pyramid of image kind under name.
func (d *Dataset) AddImage(name string, el model.Element) error {
	kind, ok := rasterKindOf(el)
	if !ok || kind != model.RasterImage {
		return fmt.Errorf("spatialign: %q is not an image raster", name)
	}
	d.images[name] = el
	return nil
}

// AddLabels adds a raster or multiscale pyramid of label kind under name.
func (d *Dataset) AddLabels(name string, el model.Element) error {
	kind, ok := rasterKindOf(el)
	if !ok || kind != model.RasterLabels {
		return fmt.Errorf("spatialign: %q is not a label raster", name)
	}
	d.labels[name] = el
	return nil
}

// AddPoints adds a point table under name.
func (d *Dataset) AddPoints(name string, p *model.PointTable) {
	d.points[name] = p
}

// AddShapes adds a shape collection under name.
func (d *Dataset) AddShapes(name string, s *model.ShapeCollection) {
	d.shapes[name] = s
}

// Images returns a copy of the image group.
func (d *Dataset) Images() map[string]model.Element { return copyGroup(d.images) }

// Labels returns a copy of the label group.
func (d *Dataset) Labels() map[string]model.Element { return copyGroup(d.labels) }

// Points returns a copy of the point group.
func (d *Dataset) Points() map[string]*model.PointTable { return copyGroup(d.points) }

// Shapes returns a copy of the shape group.
func (d *Dataset) Shapes() map[string]*model.ShapeCollection { return copyGroup(d.shapes) }

func copyGroup[T any](g map[string]T) map[string]T {
	out := make(map[string]T, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

func sortedKeys[T any](g map[string]T) []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyDataset transforms every entity of the dataset and rebuilds a new
// one; empty groups are skipped. Without MaintainPositioning the request
// must name the target coordinate system; with it, exactly one of
// Transformation and ToCoordinateSystem must be set.
func (e *Engine) ApplyDataset(d *Dataset, req Request) (*Dataset, []Warning, error) {
	if !req.MaintainPositioning {
		if req.Transformation != nil || req.ToCoordinateSystem == "" {
			return nil, nil, ErrAmbiguousTransform
		}
	} else if (req.Transformation == nil) == (req.ToCoordinateSystem == "") {
		return nil, nil, ErrInvalidRequest
	}

	wc := &warningCollector{logger: e.cfg.Logger}
	out := NewDataset()
	out.systems = d.systems.Clone()

	for _, name := range sortedKeys(d.images) {
		el, err := e.apply(d.images[name], req, wc)
		if err != nil {
			return nil, wc.warnings, fmt.Errorf("image %q: %w", name, err)
		}
		out.images[name] = el
	}
	for _, name := range sortedKeys(d.labels) {
		el, err := e.apply(d.labels[name], req, wc)
		if err != nil {
			return nil, wc.warnings, fmt.Errorf("labels %q: %w", name, err)
		}
		out.labels[name] = el
	}
	for _, name := range sortedKeys(d.points) {
		el, err := e.apply(d.points[name], req, wc)
		if err != nil {
			return nil, wc.warnings, fmt.Errorf("points %q: %w", name, err)
		}
		out.points[name] = el.(*model.PointTable)
	}
	for _, name := range sortedKeys(d.shapes) {
		el, err := e.apply(d.shapes[name], req, wc)
		if err != nil {
			return nil, wc.warnings, fmt.Errorf("shapes %q: %w", name, err)
		}
		out.shapes[name] = el.(*model.ShapeCollection)
	}
	return out, wc.warnings, nil
}
