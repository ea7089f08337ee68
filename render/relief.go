package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/edt"
	"github.com/soypat/edt/internal/d3"
)

// ReliefConfig controls Relief output. The zero value renders 960×540
// pixels at moderate vertical exaggeration using every grid sample.
type ReliefConfig struct {
	// Size is the output image size in pixels.
	Size image.Point
	// Scale is the surface height as a fraction of the grid footprint.
	Scale float64
	// Step subsamples the grid, taking every Step-th sample per axis.
	Step int
	// Color is the surface color as a hex string, i.e. "#468966".
	Color string
}

func (cfg *ReliefConfig) defaults() {
	if cfg.Size.X <= 0 || cfg.Size.Y <= 0 {
		cfg.Size = image.Point{X: 960, Y: 540}
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 0.18
	}
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	if cfg.Color == "" {
		cfg.Color = "#468966"
	}
}

// Relief renders a rank 2 grid as a shaded height surface: every value
// becomes a vertex elevation and the surface is lit with a Phong shader
// from a fixed isometric camera. Useful for inspecting distance fields
// at a glance; monotone regions read as slopes and seeds as pits.
func Relief[T edt.Number](g *edt.Grid[T], cfg ReliefConfig) (image.Image, error) {
	if g.Rank() != 2 {
		return nil, errors.New("render: relief needs a rank 2 grid")
	}
	cfg.defaults()
	mx := (g.Size(0) + cfg.Step - 1) / cfg.Step
	my := (g.Size(1) + cfg.Step - 1) / cfg.Step
	if mx < 2 || my < 2 {
		return nil, errors.New("render: grid too small to triangulate")
	}

	lo, hi := valueRange(g)
	maxAbs := hi
	if -lo > maxAbs {
		maxAbs = -lo
	}
	footprint := float64(mx)
	if my > mx {
		footprint = float64(my)
	}
	zscale := 0.0
	if maxAbs > 0 {
		zscale = cfg.Scale * footprint / maxAbs
	}

	vertex := func(i, j int) fauxgl.Vector {
		v := float64(g.At(i*cfg.Step, j*cfg.Step))
		return fauxgl.V(float64(i), float64(j), v*zscale)
	}
	triangles := make([]*fauxgl.Triangle, 0, 2*(mx-1)*(my-1))
	for j := 0; j < my-1; j++ {
		for i := 0; i < mx-1; i++ {
			p00 := vertex(i, j)
			p10 := vertex(i+1, j)
			p01 := vertex(i, j+1)
			p11 := vertex(i+1, j+1)
			triangles = append(triangles,
				fauxgl.NewTriangleForPoints(p00, p10, p11),
				fauxgl.NewTriangleForPoints(p00, p11, p01),
			)
		}
	}
	mesh := fauxgl.NewTriangleMesh(triangles)

	const (
		scale = 2  // supersampling factor
		fovy  = 30 // vertical field of view in degrees
		near  = 1
		far   = 10
	)
	width, height := cfg.Size.X, cfg.Size.Y
	eyepos := d3.Elem(2.4) // iso view.
	var (
		eye    = fauxgl.V(eyepos.X, eyepos.Y, eyepos.Z)
		center = fauxgl.V(0, 0, 0)
		up     = fauxgl.V(0, 0, 1)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(cfg.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
	return img, nil
}
