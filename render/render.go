// Package render turns grids and distance fields into images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"github.com/soypat/edt"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

var errHeatmapRank = errors.New("render: heatmap needs a rank 2 grid")

// Distances returns the color map used for plain distance fields:
// dark at zero distance, bright far away. Its value range is set by
// Heatmap from the grid unless the caller sets one first.
func Distances() palette.ColorMap {
	return moreland.ExtendedBlackBody()
}

// Signed returns a diverging color map for signed distance fields with
// its range centered on zero, so the surface reads as the neutral color.
func Signed[T edt.Number](g *edt.Grid[T]) palette.ColorMap {
	lo, hi := valueRange(g)
	m := hi
	if -lo > m {
		m = -lo
	}
	if m == 0 {
		m = 1
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-m)
	cm.SetMax(m)
	return cm
}

// Heatmap renders a rank 2 grid through cm, mapping grid axis 0 to image
// x and axis 1 to image y. If cm has no valid value range one is set
// from the grid's extremes; values are clamped into the range.
func Heatmap[T edt.Number](g *edt.Grid[T], cm palette.ColorMap) (*image.NRGBA, error) {
	if g.Rank() != 2 {
		return nil, errHeatmapRank
	}
	if cm.Max() <= cm.Min() {
		lo, hi := valueRange(g)
		if hi <= lo {
			hi = lo + 1
		}
		cm.SetMin(lo)
		cm.SetMax(hi)
	}
	nx, ny := g.Size(0), g.Size(1)
	img := image.NewNRGBA(image.Rect(0, 0, nx, ny))
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			v := float64(g.At(ix, iy))
			if v < cm.Min() {
				v = cm.Min()
			} else if v > cm.Max() {
				v = cm.Max()
			}
			c, err := cm.At(v)
			if err != nil {
				return nil, fmt.Errorf("render: color map at %v: %w", v, err)
			}
			img.Set(ix, iy, c)
		}
	}
	return img, nil
}

// HeatmapSlice renders the axis-aligned plane of a rank 3 grid where the
// given axis holds index. The remaining two axes map to image x and y in
// axis order.
func HeatmapSlice[T edt.Number](g *edt.Grid[T], axis, index int, cm palette.ColorMap) (*image.NRGBA, error) {
	if g.Rank() != 3 {
		return nil, errors.New("render: heatmap slice needs a rank 3 grid")
	}
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("render: slice axis %d out of range", axis)
	}
	if index < 0 || index >= g.Size(axis) {
		return nil, fmt.Errorf("render: slice index %d out of range on axis %d", index, axis)
	}
	var ax, ay int
	switch axis {
	case 0:
		ax, ay = 1, 2
	case 1:
		ax, ay = 0, 2
	case 2:
		ax, ay = 0, 1
	}
	plane := edt.NewGrid[T](g.Size(ax), g.Size(ay))
	ix := make([]int, 3)
	ix[axis] = index
	for j := 0; j < g.Size(ay); j++ {
		for i := 0; i < g.Size(ax); i++ {
			ix[ax], ix[ay] = i, j
			plane.Set(g.At(ix...), i, j)
		}
	}
	return Heatmap(plane, cm)
}

// MaskFromImage thresholds an image into a binary mask grid of shape
// (width, height): pixels whose gray level is at least threshold become
// 1 (foreground), the rest 0. Grid coordinate (x, y) addresses the pixel
// at the same position relative to the image origin.
func MaskFromImage(img image.Image, threshold uint8) *edt.Grid[uint8] {
	b := img.Bounds()
	g := edt.NewGrid[uint8](b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y >= threshold {
				g.Set(1, x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	return g
}

// Thumbnail scales img down to the given width preserving aspect ratio.
func Thumbnail(img image.Image, width uint) image.Image {
	return resize.Resize(width, 0, img, resize.Bilinear)
}

func valueRange[T edt.Number](g *edt.Grid[T]) (lo, hi float64) {
	data := g.Data()
	if len(data) == 0 {
		return 0, 0
	}
	lo = float64(data[0])
	hi = lo
	for _, v := range data[1:] {
		f := float64(v)
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	return lo, hi
}
