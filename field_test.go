package edt_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/edt"
	"github.com/soypat/edt/internal/d3"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestField2CellCenters(t *testing.T) {
	rng := rand.New(rand.NewSource(30))
	g := edt.NewGrid[float64](6, 4)
	for i := range g.Data() {
		g.Data()[i] = rng.Float64() * 10
	}
	f, err := edt.NewField2(g, []float64{3, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 4; j++ {
			p := r2.Vec{X: (float64(i) + 0.5) * 3, Y: (float64(j) + 0.5) * 0.5}
			if got := f.Evaluate(p); got != g.At(i, j) {
				t.Fatalf("center (%d,%d): got %v, want %v", i, j, got, g.At(i, j))
			}
		}
	}
}

// TestField2Linear checks that bilinear interpolation reproduces an
// affine field exactly at arbitrary interior points.
func TestField2Linear(t *testing.T) {
	const nx, ny = 8, 11
	g := edt.NewGrid[float64](nx, ny)
	affine := func(x, y float64) float64 { return 2*x - 3*y + 5 }
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			g.Set(affine(float64(i), float64(j)), i, j)
		}
	}
	f, err := edt.NewField2(g, []float64{1.25, 2})
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(31))
	for trial := 0; trial < 60; trial++ {
		// Stay clear of the edge-extended border.
		qx := 0.5 + rng.Float64()*(nx-2)
		qy := 0.5 + rng.Float64()*(ny-2)
		p := r2.Vec{X: qx * 1.25, Y: qy * 2}
		want := affine(qx-0.5, qy-0.5)
		if got := f.Evaluate(p); math.Abs(got-want) > 1e-9 {
			t.Fatalf("at %+v: got %v, want %v", p, got, want)
		}
	}
}

func TestField2EdgeExtension(t *testing.T) {
	g, _ := edt.GridFrom([]float64{1, 2, 3, 4}, 2, 2)
	f, err := edt.NewField2(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		p    r2.Vec
		want float64
	}{
		{r2.Vec{X: -50, Y: -50}, 1},
		{r2.Vec{X: -50, Y: 50}, 2},
		{r2.Vec{X: 50, Y: -50}, 3},
		{r2.Vec{X: 50, Y: 50}, 4},
	}
	for _, c := range cases {
		if got := f.Evaluate(c.p); got != c.want {
			t.Errorf("at %+v: got %v, want %v", c.p, got, c.want)
		}
	}
}

func TestField2Bounds(t *testing.T) {
	g := edt.NewGrid[uint8](10, 20)
	f, err := edt.NewField2(g, []float64{0.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	b := f.Bounds()
	if b.Min != (r2.Vec{}) || b.Max != (r2.Vec{X: 5, Y: 40}) {
		t.Errorf("bounds %+v, want origin to (5,40)", b)
	}
}

func TestField3Linear(t *testing.T) {
	const n = 7
	g := edt.NewGrid[float64](n, n, n)
	affine := func(x, y, z float64) float64 { return x - 2*y + 0.5*z - 1 }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				g.Set(affine(float64(i), float64(j), float64(k)), i, j, k)
			}
		}
	}
	f, err := edt.NewField3(g, []float64{2, 1, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	interior := d3.Box(f.Bounds())
	interior.Min = r3.Add(interior.Min, r3.Scale(0.5, r3.Vec{X: 2, Y: 1, Z: 0.5}))
	interior.Max = r3.Sub(interior.Max, r3.Scale(1.5, r3.Vec{X: 2, Y: 1, Z: 0.5}))
	for _, p := range interior.RandomSet(40) {
		want := affine(p.X/2-0.5, p.Y-0.5, p.Z/0.5-0.5)
		if got := f.Evaluate(p); math.Abs(got-want) > 1e-9 {
			t.Fatalf("at %+v: got %v, want %v", p, got, want)
		}
	}
}

func TestFieldRankErrors(t *testing.T) {
	g3 := edt.NewGrid[float32](2, 2, 2)
	if _, err := edt.NewField2(g3, nil); err == nil {
		t.Error("rank 3 grid accepted as a 2D field")
	}
	g2 := edt.NewGrid[float32](2, 2)
	if _, err := edt.NewField3(g2, nil); err == nil {
		t.Error("rank 2 grid accepted as a 3D field")
	}
	if _, err := edt.NewField2(g2, []float64{1, 0}); err == nil {
		t.Error("zero pitch accepted")
	}
}

func TestBatch3AgreesWithScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(33))
	g := edt.NewGrid[float32](5, 6, 7)
	for i := range g.Data() {
		g.Data()[i] = rng.Float32()*20 - 10
	}
	f, err := edt.NewField3(g, []float64{1, 1.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	batch := f.Batch()

	bb := d3.Box(f.Bounds())
	pos := make([]ms3.Vec, 25)
	want := make([]float64, len(pos))
	for i := range pos {
		p := bb.Random()
		pos[i] = ms3.Vec{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
		want[i] = f.Evaluate(r3.Vec{X: float64(pos[i].X), Y: float64(pos[i].Y), Z: float64(pos[i].Z)})
	}
	dist := make([]float32, len(pos))
	if err := batch.Evaluate(pos, dist, nil); err != nil {
		t.Fatal(err)
	}
	for i := range dist {
		if math.Abs(float64(dist[i])-want[i]) > 1e-4*(1+math.Abs(want[i])) {
			t.Fatalf("position %d: batch %v, scalar %v", i, dist[i], want[i])
		}
	}

	if err := batch.Evaluate(pos, dist[:3], nil); err == nil {
		t.Error("length mismatch not reported")
	}
	gb := batch.Bounds()
	sb := f.Bounds()
	if float64(gb.Max.X) != sb.Max.X || float64(gb.Max.Y) != sb.Max.Y || float64(gb.Max.Z) != sb.Max.Z {
		t.Errorf("batch bounds %+v do not match scalar bounds %+v", gb, sb)
	}
}

func TestBatch2AgreesWithScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(34))
	g := edt.NewGrid[float32](9, 4)
	for i := range g.Data() {
		g.Data()[i] = rng.Float32() * 5
	}
	f, err := edt.NewField2(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	batch := f.Batch()
	pos := make([]ms2.Vec, 15)
	dist := make([]float32, len(pos))
	for i := range pos {
		pos[i] = ms2.Vec{X: rng.Float32() * 9, Y: rng.Float32() * 4}
	}
	if err := batch.Evaluate(pos, dist, nil); err != nil {
		t.Fatal(err)
	}
	for i := range pos {
		want := f.Evaluate(r2.Vec{X: float64(pos[i].X), Y: float64(pos[i].Y)})
		if math.Abs(float64(dist[i])-want) > 1e-4*(1+math.Abs(want)) {
			t.Fatalf("position %d: batch %v, scalar %v", i, dist[i], want)
		}
	}
}
