// Package imaging converts two-dimensional rasters to and from standard
// image types, and renders scaled previews for inspection.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/tsawler/spatialign/model"
)

// ErrUnsupportedLayout reports a raster whose axes or channel count
// cannot be rendered as an image.
var ErrUnsupportedLayout = errors.New("imaging: unsupported raster layout")

// ToImage renders a 2-d raster as an image. Single-channel rasters (and
// label masks) become grayscale; three-channel rasters become RGBA with
// the channels taken as red, green, and blue. Values are clamped to
// [0, 255].
func ToImage(r *model.Raster) (image.Image, error) {
	spatial := r.SpatialShape()
	if len(spatial) != 2 {
		return nil, fmt.Errorf("%w: %d spatial dimensions", ErrUnsupportedLayout, len(spatial))
	}
	h, w := spatial[0], spatial[1]
	data := r.Data()

	switch r.Channels() {
	case 1:
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray(x, y, color.Gray{Y: clamp8(data[y*w+x])})
			}
		}
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		plane := h * w
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				img.SetRGBA(x, y, color.RGBA{
					R: clamp8(data[i]),
					G: clamp8(data[plane+i]),
					B: clamp8(data[2*plane+i]),
					A: 255,
				})
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, r.Channels())
}

// FromImage builds an image raster from img. Grayscale images produce a
// (y, x) raster; anything else produces a (c, y, x) raster with three
// channels.
func FromImage(img image.Image) (*model.Raster, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if g, ok := img.(*image.Gray); ok {
		data := make([]float64, h*w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				data[y*w+x] = float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
		return model.NewImage(data, []int{h, w}, []string{"y", "x"})
	}

	plane := h * w
	data := make([]float64, 3*plane)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*w + x
			data[i] = float64(r >> 8)
			data[plane+i] = float64(g >> 8)
			data[2*plane+i] = float64(bl >> 8)
		}
	}
	return model.NewImage(data, []int{3, h, w}, []string{"c", "y", "x"})
}

// Preview renders the raster scaled to fit within maxSide pixels on its
// longer edge. Label masks are scaled with nearest-neighbor so mask
// values survive; images use bilinear interpolation.
func Preview(r *model.Raster, maxSide int) (image.Image, error) {
	if maxSide <= 0 {
		return nil, fmt.Errorf("imaging: preview size must be positive, got %d", maxSide)
	}
	src, err := ToImage(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	longest := b.Dx()
	if b.Dy() > longest {
		longest = b.Dy()
	}
	if longest <= maxSide {
		return src, nil
	}
	scale := float64(maxSide) / float64(longest)
	w := int(math.Round(float64(b.Dx()) * scale))
	h := int(math.Round(float64(b.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler := draw.Scaler(draw.BiLinear)
	if r.RasterKind() == model.RasterLabels {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
