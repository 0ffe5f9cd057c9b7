package spatialign

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/transform"
)

func mustImage(t *testing.T, data []float64, shape []int) *model.Raster {
	t.Helper()
	r, err := model.NewImage(data, shape, nil)
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}
	return r
}

func mustPoints(t *testing.T, coords []float64, n int) *model.PointTable {
	t.Helper()
	p, err := model.NewPointTable(coords, n, nil)
	if err != nil {
		t.Fatalf("NewPointTable() error = %v", err)
	}
	return p
}

func sequential(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func floatsClose(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("got %v, want %v (index %d)", got, want, i)
		}
	}
}

// ============================================================================
// Raster Transformation Tests
// ============================================================================

func TestApplyRasterPureTranslation(t *testing.T) {
	// A pure translation moves the grid without resampling: same shape,
	// identical data, the offset recorded in the registry.
	img := mustImage(t, sequential(100), []int{10, 10})
	shift := transform.NewTranslation([]float64{5, 5}, []string{"y", "x"})
	img.Transformations().Set("world", shift)

	out, warnings, err := Apply(img, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	res := out.(*model.Raster)
	if got := res.Shape(); got[0] != 10 || got[1] != 10 {
		t.Fatalf("Shape() = %v, want [10 10]", got)
	}
	floatsClose(t, res.Data(), img.Data(), 0)

	reg := res.Transformations()
	if reg.Len() != 1 {
		t.Fatalf("registry has %d entries, want 1", reg.Len())
	}
	got, err := reg.Get("world")
	if err != nil {
		t.Fatalf("Get(world) error = %v", err)
	}
	if !got.Equal(shift) {
		t.Errorf("registry entry = %#v, want Translation([5 5])", got)
	}

	// The input registry is untouched.
	if img.Transformations().Len() != 2 {
		t.Errorf("input registry mutated: %v", img.Transformations().Names())
	}
}

func TestApplyRasterQuarterTurn(t *testing.T) {
	// Rotating a 2x3 grid a quarter turn counter-clockwise yields a 3x2
	// grid. The row that rotates out of the sampled band is zero-filled.
	img := mustImage(t, sequential(6), []int{2, 3})
	img.Transformations().Set("world", transform.NewRotation2D(math.Pi/2, []string{"y", "x"}))

	out, _, err := Apply(img, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.Raster)
	if got := res.Shape(); got[0] != 3 || got[1] != 2 {
		t.Fatalf("Shape() = %v, want [3 2]", got)
	}
	floatsClose(t, res.Data(), []float64{
		0, 0,
		2, 5,
		1, 4,
	}, 0)
}

func TestApplyRasterScaleTranslation(t *testing.T) {
	// Doubling a 2x2 grid produces a 4x4 grid whose pixel centers sit
	// half a (new) pixel before the old ones.
	img := mustImage(t, []float64{1, 2, 3, 4}, []int{2, 2})
	img.Transformations().Set("world", transform.NewScale([]float64{2, 2}, []string{"y", "x"}))

	out, _, err := Apply(img, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.Raster)
	if got := res.Shape(); got[0] != 4 || got[1] != 4 {
		t.Fatalf("Shape() = %v, want [4 4]", got)
	}

	got, err := res.Transformations().Get("world")
	if err != nil {
		t.Fatalf("Get(world) error = %v", err)
	}
	want := transform.NewTranslation([]float64{-0.5, -0.5}, []string{"y", "x"})
	if !got.Equal(want) {
		t.Errorf("registry entry = %#v, want Translation([-0.5 -0.5])", got)
	}
}

func TestApplyLabelsKeepDiscreteValues(t *testing.T) {
	// Label masks resample with order 0 regardless of the engine order,
	// so mask ids survive.
	lbl, err := model.NewLabels([]float64{0, 1, 1, 2}, []int{2, 2}, nil)
	if err != nil {
		t.Fatalf("NewLabels() error = %v", err)
	}
	lbl.Transformations().Set("world", transform.NewScale([]float64{2, 2}, []string{"y", "x"}))

	engine := NewWithConfig(Config{Order: 1})
	out, _, err := engine.Apply(lbl, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.Raster)
	if res.RasterKind() != model.RasterLabels {
		t.Fatalf("RasterKind() = %v, want Labels", res.RasterKind())
	}
	for _, v := range res.Data() {
		if v != math.Trunc(v) {
			t.Fatalf("label output has fractional value %v", v)
		}
	}
}

// ============================================================================
// Multiscale Tests
// ============================================================================

func TestApplyMultiscaleTranslation(t *testing.T) {
	lv0 := mustImage(t, sequential(16), []int{4, 4})
	lv1 := mustImage(t, sequential(4), []int{2, 2})
	ms, err := model.NewMultiscale([]*model.Raster{lv0, lv1})
	if err != nil {
		t.Fatalf("NewMultiscale() error = %v", err)
	}
	shift := transform.NewTranslation([]float64{1, 1}, []string{"y", "x"})
	ms.Transformations().Set("world", shift)

	out, _, err := Apply(ms, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.Multiscale)
	if res.NumLevels() != 2 {
		t.Fatalf("NumLevels() = %d, want 2", res.NumLevels())
	}
	if got := res.Level(0).Shape(); got[0] != 4 || got[1] != 4 {
		t.Errorf("level 0 shape = %v, want [4 4]", got)
	}
	floatsClose(t, res.Level(0).Data(), lv0.Data(), 0)

	// Pyramid registry carries the level-0 translation; per-level
	// registries carry the intrinsic scales.
	got, err := res.Transformations().Get("world")
	if err != nil {
		t.Fatalf("Get(world) error = %v", err)
	}
	if !got.Equal(shift) {
		t.Errorf("pyramid registry entry = %#v, want Translation([1 1])", got)
	}
	s1, err := res.LevelScale(1)
	if err != nil {
		t.Fatalf("LevelScale(1) error = %v", err)
	}
	floatsClose(t, s1.Factors(), []float64{2, 2}, 0)
}

func TestApplyMultiscaleCustomDefaultSystem(t *testing.T) {
	// An engine configured with its own default coordinate-system name
	// must still find the per-level scales a fresh pyramid carries.
	lv0 := mustImage(t, sequential(16), []int{4, 4})
	lv1 := mustImage(t, sequential(4), []int{2, 2})
	ms, err := model.NewMultiscale([]*model.Raster{lv0, lv1})
	if err != nil {
		t.Fatalf("NewMultiscale() error = %v", err)
	}
	shift := transform.NewTranslation([]float64{1, 1}, []string{"y", "x"})
	ms.Transformations().Set("world", shift)

	engine := NewWithConfig(Config{DefaultCoordinateSystem: "pixel"})
	out, _, err := engine.Apply(ms, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.Multiscale)
	got, err := res.Transformations().Get("world")
	if err != nil {
		t.Fatalf("Get(world) error = %v", err)
	}
	if !got.Equal(shift) {
		t.Errorf("pyramid registry entry = %#v, want Translation([1 1])", got)
	}
	s1, err := res.LevelScale(1)
	if err != nil {
		t.Fatalf("LevelScale(1) error = %v", err)
	}
	floatsClose(t, s1.Factors(), []float64{2, 2}, 0)
}

// ============================================================================
// Point Tests
// ============================================================================

func TestApplyPointsScale(t *testing.T) {
	p := mustPoints(t, []float64{0, 0, 1, 0, 0, 1}, 3)
	p.Transformations().Set("physical", transform.NewScale([]float64{2, 2}, []string{"x", "y"}))

	out, warnings, err := Apply(p, Request{ToCoordinateSystem: "physical"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	res := out.(*model.PointTable)
	floatsClose(t, res.Coords(), []float64{0, 0, 2, 0, 0, 2}, 1e-12)

	reg := res.Transformations()
	if reg.Len() != 1 {
		t.Fatalf("registry has %d entries, want 1", reg.Len())
	}
	got, err := reg.Get("physical")
	if err != nil {
		t.Fatalf("Get(physical) error = %v", err)
	}
	if !got.Equal(transform.Identity{}) {
		t.Errorf("registry entry = %#v, want Identity", got)
	}
}

func TestApplyPointsKeepsAttributes(t *testing.T) {
	p := mustPoints(t, []float64{0, 0, 1, 1}, 2)
	if err := p.SetAttr("radius", []float64{3, 4}); err != nil {
		t.Fatalf("SetAttr() error = %v", err)
	}
	p.Transformations().Set("world", transform.NewTranslation([]float64{10, 0}, []string{"x", "y"}))

	out, _, err := Apply(p, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.PointTable)
	floatsClose(t, res.Coords(), []float64{10, 0, 11, 1}, 1e-12)
	got, ok := res.Attr("radius")
	if !ok {
		t.Fatal("radius attribute dropped")
	}
	floatsClose(t, got, []float64{3, 4}, 0)
}

// ============================================================================
// Shape Tests
// ============================================================================

func TestApplyShapesIsotropicRadius(t *testing.T) {
	s, err := model.NewShapeCollection(2, []model.Geometry{
		model.NewCircleGeometry([]float64{1, 1}, 0.5),
		model.NewPolygonGeometry([][]float64{{0, 0, 2, 0, 2, 2, 0, 2}}),
	})
	if err != nil {
		t.Fatalf("NewShapeCollection() error = %v", err)
	}
	s.Transformations().Set("world", transform.NewScale([]float64{2, 2}, []string{"x", "y"}))

	out, warnings, err := Apply(s, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	res := out.(*model.ShapeCollection)
	r, _ := res.Geometry(0).Radius()
	if math.Abs(r-1.0) > 1e-9 {
		t.Errorf("radius = %v, want 1", r)
	}
	floatsClose(t, res.Geometry(0).Rings()[0], []float64{2, 2}, 1e-12)
	floatsClose(t, res.Geometry(1).Rings()[0], []float64{0, 0, 4, 0, 4, 4, 0, 4}, 1e-12)
}

func TestApplyShapesRotationKeepsRadius(t *testing.T) {
	s, err := model.NewShapeCollection(2, []model.Geometry{
		model.NewCircleGeometry([]float64{1, 0}, 2),
	})
	if err != nil {
		t.Fatalf("NewShapeCollection() error = %v", err)
	}
	s.Transformations().Set("world", transform.NewRotation2D(math.Pi/2, []string{"x", "y"}))

	out, warnings, err := Apply(s, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	r, _ := out.(*model.ShapeCollection).Geometry(0).Radius()
	if math.Abs(r-2) > 1e-9 {
		t.Errorf("radius = %v, want 2", r)
	}
}

func TestApplyShapesAnisotropicRadiusWarns(t *testing.T) {
	s, err := model.NewShapeCollection(2, []model.Geometry{
		model.NewCircleGeometry([]float64{1, 1}, 1),
	})
	if err != nil {
		t.Fatalf("NewShapeCollection() error = %v", err)
	}
	s.Transformations().Set("world", transform.NewScale([]float64{2, 4}, []string{"x", "y"}))

	out, warnings, err := Apply(s, Request{ToCoordinateSystem: "world"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "isotropic") {
		t.Fatalf("warnings = %v, want one anisotropy warning", warnings)
	}
	r, _ := out.(*model.ShapeCollection).Geometry(0).Radius()
	if math.Abs(r-3) > 1e-9 {
		t.Errorf("radius = %v, want mean eigenvalue 3", r)
	}
}

// ============================================================================
// Request Resolution Tests
// ============================================================================

func TestApplyResolveErrors(t *testing.T) {
	img := mustImage(t, sequential(4), []int{2, 2})
	img.Transformations().Set("world", transform.NewTranslation([]float64{1, 1}, []string{"y", "x"}))

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"no target", Request{}, ErrAmbiguousTransform},
		{
			"explicit transform with populated registry",
			Request{Transformation: transform.NewTranslation([]float64{1, 1}, []string{"y", "x"})},
			ErrAmbiguousTransform,
		},
		{"unknown system", Request{ToCoordinateSystem: "nope"}, model.ErrCoordinateSystemNotFound},
		{
			"maintain with both",
			Request{
				Transformation:      transform.Identity{},
				ToCoordinateSystem:  "world",
				MaintainPositioning: true,
			},
			ErrInvalidRequest,
		},
		{
			"both set without maintain",
			Request{
				Transformation:     transform.Identity{},
				ToCoordinateSystem: "world",
			},
			ErrAmbiguousTransform,
		},
		{"maintain with neither", Request{MaintainPositioning: true}, ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Apply(img, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Apply() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApplyDeprecatedExplicitTransform(t *testing.T) {
	// With a single-entry registry an explicit transform equal to that
	// entry is still accepted, with a deprecation warning.
	img := mustImage(t, sequential(4), []int{2, 2})

	out, warnings, err := Apply(img, Request{Transformation: transform.Identity{}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "deprecated") {
		t.Fatalf("warnings = %v, want one deprecation warning", warnings)
	}
	res := out.(*model.Raster)
	floatsClose(t, res.Data(), img.Data(), 0)

	got, err := res.Transformations().Get(model.DefaultCoordinateSystem)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Equal(transform.Identity{}) {
		t.Errorf("registry entry = %#v, want Identity", got)
	}

	// A non-matching explicit transform stays ambiguous.
	_, _, err = Apply(img, Request{
		Transformation: transform.NewTranslation([]float64{1, 1}, []string{"y", "x"}),
	})
	if !errors.Is(err, ErrAmbiguousTransform) {
		t.Errorf("Apply() error = %v, want ErrAmbiguousTransform", err)
	}
}

// ============================================================================
// Maintain Positioning Tests
// ============================================================================

func TestApplyPointsMaintainPositioning(t *testing.T) {
	p := mustPoints(t, []float64{1, 1, 2, 3}, 2)
	anchor := transform.NewScale([]float64{10, 10}, []string{"x", "y"})
	p.Transformations().Set("physical", anchor)

	shift := transform.NewTranslation([]float64{5, -1}, []string{"x", "y"})
	out, _, err := Apply(p, Request{Transformation: shift, MaintainPositioning: true})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.PointTable)
	floatsClose(t, res.Coords(), []float64{6, 0, 7, 2}, 1e-12)

	// Every prior anchoring survives, corrected so the physical
	// positions are unchanged.
	reg := res.Transformations()
	if reg.Len() != 2 {
		t.Fatalf("registry names = %v, want global and physical", reg.Names())
	}
	for _, cs := range []string{model.DefaultCoordinateSystem, "physical"} {
		oldT, err := p.Transformations().Get(cs)
		if err != nil {
			t.Fatalf("input Get(%s) error = %v", cs, err)
		}
		newT, err := reg.Get(cs)
		if err != nil {
			t.Fatalf("output Get(%s) error = %v", cs, err)
		}
		oldM, err := transform.NewSequence(shift, newT).Matrix([]string{"x", "y"}, []string{"x", "y"})
		if err != nil {
			t.Fatalf("Matrix() error = %v", err)
		}
		wantM, err := oldT.Matrix([]string{"x", "y"}, []string{"x", "y"})
		if err != nil {
			t.Fatalf("Matrix() error = %v", err)
		}
		for _, pt := range [][]float64{{1, 1}, {2, 3}} {
			got := transform.MapPoint(oldM, pt)
			want := transform.MapPoint(wantM, pt)
			floatsClose(t, got, want, 1e-9)
		}
	}
}

func TestApplyMaintainPositioningByName(t *testing.T) {
	p := mustPoints(t, []float64{0, 0, 4, 2}, 2)
	p.Transformations().Set("world", transform.NewScale([]float64{2, 2}, []string{"x", "y"}))

	out, _, err := Apply(p, Request{ToCoordinateSystem: "world", MaintainPositioning: true})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.PointTable)
	floatsClose(t, res.Coords(), []float64{0, 0, 8, 4}, 1e-12)

	// Mapping the transformed coordinates into "world" lands on the
	// same physical positions as before.
	newT, err := res.Transformations().Get("world")
	if err != nil {
		t.Fatalf("Get(world) error = %v", err)
	}
	m, err := newT.Matrix([]string{"x", "y"}, []string{"x", "y"})
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	got := transform.MapPoint(m, []float64{8, 4})
	floatsClose(t, got, []float64{8, 4}, 1e-9)
}

func TestApplyRasterMaintainPositioning(t *testing.T) {
	// Scaling a 2x2 grid up to 4x4 while maintaining positioning: every
	// prior anchoring survives, corrected by the half-pixel translation
	// and the inverse scale so new pixel centers land on the old world
	// positions.
	img := mustImage(t, []float64{1, 2, 3, 4}, []int{2, 2})
	world := transform.NewTranslation([]float64{10, 10}, []string{"y", "x"})
	img.Transformations().Set("world", world)

	scale := transform.NewScale([]float64{2, 2}, []string{"y", "x"})
	out, _, err := Apply(img, Request{Transformation: scale, MaintainPositioning: true})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.Raster)
	if got := res.Shape(); got[0] != 4 || got[1] != 4 {
		t.Fatalf("Shape() = %v, want [4 4]", got)
	}

	reg := res.Transformations()
	if reg.Len() != 2 {
		t.Fatalf("registry names = %v, want global and world", reg.Names())
	}
	// Old pixel center (1,1) spreads over new pixels (2,2)..(3,3); its
	// center in the new grid is (2.5,2.5).
	tests := []struct {
		cs   string
		want []float64
	}{
		{model.DefaultCoordinateSystem, []float64{1, 1}},
		{"world", []float64{11, 11}},
	}
	for _, tt := range tests {
		newT, err := reg.Get(tt.cs)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", tt.cs, err)
		}
		m, err := newT.Matrix([]string{"y", "x"}, []string{"y", "x"})
		if err != nil {
			t.Fatalf("Matrix() error = %v", err)
		}
		got := transform.MapPoint(m, []float64{2.5, 2.5})
		floatsClose(t, got, tt.want, 1e-9)
	}
}

func TestApplyMultiscaleMaintainPositioning(t *testing.T) {
	lv0 := mustImage(t, sequential(16), []int{4, 4})
	lv1 := mustImage(t, sequential(4), []int{2, 2})
	ms, err := model.NewMultiscale([]*model.Raster{lv0, lv1})
	if err != nil {
		t.Fatalf("NewMultiscale() error = %v", err)
	}
	world := transform.NewScale([]float64{3, 3}, []string{"y", "x"})
	ms.Transformations().Set("world", world)

	shift := transform.NewTranslation([]float64{1, 1}, []string{"y", "x"})
	out, _, err := Apply(ms, Request{Transformation: shift, MaintainPositioning: true})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.Multiscale)

	// The pure translation folds into the registry, so every anchoring
	// maps coordinates exactly as before.
	reg := res.Transformations()
	if reg.Len() != 2 {
		t.Fatalf("registry names = %v, want global and world", reg.Names())
	}
	for _, cs := range []string{model.DefaultCoordinateSystem, "world"} {
		oldT, _ := ms.Transformations().Get(cs)
		newT, err := reg.Get(cs)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", cs, err)
		}
		oldM, _ := oldT.Matrix([]string{"y", "x"}, []string{"y", "x"})
		newM, err := newT.Matrix([]string{"y", "x"}, []string{"y", "x"})
		if err != nil {
			t.Fatalf("Matrix() error = %v", err)
		}
		for _, pt := range [][]float64{{0, 0}, {2, 3}} {
			floatsClose(t, transform.MapPoint(newM, pt), transform.MapPoint(oldM, pt), 1e-9)
		}
	}
	s1, err := res.LevelScale(1)
	if err != nil {
		t.Fatalf("LevelScale(1) error = %v", err)
	}
	floatsClose(t, s1.Factors(), []float64{2, 2}, 0)
}

func TestAdjustRequiresPlaceholderRegistry(t *testing.T) {
	e := New()

	// A second registry entry violates the placeholder precondition.
	img := mustImage(t, sequential(4), []int{2, 2})
	img.Transformations().Set("other", transform.Identity{})
	err := e.adjust(img, nil, transform.Identity{}, transform.Identity{}, "world", false)
	if !errors.Is(err, ErrRegistryInvariant) {
		t.Errorf("adjust() error = %v, want ErrRegistryInvariant", err)
	}

	// A raster adjustment needs the raster translation.
	img = mustImage(t, sequential(4), []int{2, 2})
	err = e.adjust(img, nil, transform.Identity{}, nil, "world", false)
	if !errors.Is(err, ErrRegistryInvariant) {
		t.Errorf("adjust() without raster translation: error = %v, want ErrRegistryInvariant", err)
	}

	// A non-raster adjustment must not carry one.
	p := mustPoints(t, []float64{0, 0}, 1)
	err = e.adjust(p, nil, transform.Identity{}, transform.Identity{}, "world", false)
	if !errors.Is(err, ErrRegistryInvariant) {
		t.Errorf("adjust() with stray raster translation: error = %v, want ErrRegistryInvariant", err)
	}
}

func TestApplyIdentityMaintainsAnchorings(t *testing.T) {
	p := mustPoints(t, []float64{1, 2, 3, 4}, 2)
	anchor := transform.NewTranslation([]float64{7, 7}, []string{"x", "y"})
	p.Transformations().Set("world", anchor)

	out, _, err := Apply(p, Request{Transformation: transform.Identity{}, MaintainPositioning: true})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	res := out.(*model.PointTable)
	floatsClose(t, res.Coords(), []float64{1, 2, 3, 4}, 0)

	// Every anchoring still maps to the same positions it did before.
	for _, cs := range []string{model.DefaultCoordinateSystem, "world"} {
		oldT, _ := p.Transformations().Get(cs)
		newT, err := res.Transformations().Get(cs)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", cs, err)
		}
		oldM, _ := oldT.Matrix([]string{"x", "y"}, []string{"x", "y"})
		newM, err := newT.Matrix([]string{"x", "y"}, []string{"x", "y"})
		if err != nil {
			t.Fatalf("Matrix() error = %v", err)
		}
		for _, pt := range [][]float64{{1, 2}, {3, 4}} {
			floatsClose(t, transform.MapPoint(newM, pt), transform.MapPoint(oldM, pt), 1e-12)
		}
	}
}

func TestApplyMaintainPositioningRoundTrip(t *testing.T) {
	// Applying a transform and then its inverse, both maintaining
	// positioning, returns the registry to its original meaning.
	p := mustPoints(t, []float64{1, 1, 3, 2}, 2)
	anchor := transform.NewScale([]float64{2, 2}, []string{"x", "y"})
	p.Transformations().Set("physical", anchor)

	step := transform.NewTranslation([]float64{4, -2}, []string{"x", "y"})
	mid, _, err := Apply(p, Request{Transformation: step, MaintainPositioning: true})
	if err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	inv, err := step.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	back, _, err := Apply(mid, Request{Transformation: inv, MaintainPositioning: true})
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	res := back.(*model.PointTable)
	floatsClose(t, res.Coords(), p.Coords(), 1e-9)

	for _, cs := range []string{model.DefaultCoordinateSystem, "physical"} {
		oldT, _ := p.Transformations().Get(cs)
		newT, err := res.Transformations().Get(cs)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", cs, err)
		}
		oldM, _ := oldT.Matrix([]string{"x", "y"}, []string{"x", "y"})
		newM, err := newT.Matrix([]string{"x", "y"}, []string{"x", "y"})
		if err != nil {
			t.Fatalf("Matrix() error = %v", err)
		}
		for _, pt := range [][]float64{{1, 1}, {3, 2}} {
			floatsClose(t, transform.MapPoint(newM, pt), transform.MapPoint(oldM, pt), 1e-9)
		}
	}
}

// ============================================================================
// Warning Formatting Tests
// ============================================================================

func TestFormatWarnings(t *testing.T) {
	got := FormatWarnings([]Warning{{Message: "a"}, {Message: "b"}})
	if got != "a; b" {
		t.Errorf("FormatWarnings() = %q, want %q", got, "a; b")
	}
	if FormatWarnings(nil) != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", FormatWarnings(nil))
	}
}
