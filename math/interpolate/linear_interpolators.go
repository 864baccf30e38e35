/*package interpolate implements linear interpolators in one and three
dimensions. Interpolators keep no internal caches, so a single instance can
be shared between goroutines.
*/
package interpolate

import (
	"fmt"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewUniformLinear creates a linear interplator where a uniformly spaced
// sequence of x values starting at x0 and separated by dx and whose values are
// given by vals.
//
// Lookups will be O(1).
func NewUniformLinear(x0, dx float64, vals []float64) *Linear {
	lin := &Linear{}
	lin.xs.unifInit(x0, dx, len(vals))
	lin.vals = clone(vals)
	return lin
}

// Eval returns the interpolated value at x.
//
// Eval panics if called on a values outside the supplied range on inputs.
func (lin *Linear) Eval(x float64) float64 {
	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// Bounds returns the range over which lin can be evaluated.
func (lin *Linear) Bounds() (lo, hi float64) {
	return lin.xs.bounds()
}

//////////////////////////////
// TriLinear Implementation //
//////////////////////////////

// TriLinear is a tri-linear interpolator.
type TriLinear struct {
	xs, ys, zs searcher
	vals       []float64
	nx, ny     int
}

// NewTriLinear creates a tri-linear interpolator on top of a grid with the
// values given by vals. The values of the x, y, and z grid lines are given by
// xs, ys, and zs respectively. The vals grid is indexed in the usual way:
// vals(ix, iy, iz) -> vals[ix + iy*nx + iz*nx*ny]. All slices are copied.
//
// Panics if len(xs) * len(ys) * len(zs) != len(vals).
func NewTriLinear(xs, ys, zs, vals []float64) *TriLinear {
	if len(xs)*len(ys)*len(zs) != len(vals) {
		panic(fmt.Sprintf(
			"len(vals) = %d, but len(xs) = %d, len(ys) = %d, and len(zs) = %d",
			len(vals), len(xs), len(ys), len(zs),
		))
	}

	tri := &TriLinear{}
	tri.xs.init(clone(xs))
	tri.ys.init(clone(ys))
	tri.zs.init(clone(zs))
	tri.nx = len(xs)
	tri.ny = len(ys)
	tri.vals = clone(vals)

	return tri
}

// Eval evaluates the tri-linear interpolator at the coordinate (x, y, z).
//
// Panics if (x, y, z) is outside the range of the starting grid.
func (tri *TriLinear) Eval(x, y, z float64) float64 {
	ix := tri.xs.search(x)
	iy := tri.ys.search(y)
	iz := tri.zs.search(z)

	dix, diy, diz := 1, tri.nx, tri.nx*tri.ny
	i := ix + iy*diy + iz*diz

	v111 := tri.vals[i]
	v112 := tri.vals[i+diz]
	v121 := tri.vals[i+diy]
	v122 := tri.vals[i+diy+diz]
	v211 := tri.vals[i+dix]
	v212 := tri.vals[i+dix+diz]
	v221 := tri.vals[i+dix+diy]
	v222 := tri.vals[i+dix+diy+diz]

	x1, x2 := tri.xs.val(ix), tri.xs.val(ix+1)
	y1, y2 := tri.ys.val(iy), tri.ys.val(iy+1)
	z1, z2 := tri.zs.val(iz), tri.zs.val(iz+1)

	xd := (x - x1) / (x2 - x1)
	yd := (y - y1) / (y2 - y1)
	zd := (z - z1) / (z2 - z1)

	c11 := v111*(1-xd) + v211*xd
	c21 := v121*(1-xd) + v221*xd
	c12 := v112*(1-xd) + v212*xd
	c22 := v122*(1-xd) + v222*xd

	c1 := c11*(1-yd) + c21*yd
	c2 := c12*(1-yd) + c22*yd

	return c1*(1-zd) + c2*zd
}

// Bounds returns the grid extrema along each axis.
func (tri *TriLinear) Bounds() (x, y, z [2]float64) {
	x[0], x[1] = tri.xs.bounds()
	y[0], y[1] = tri.ys.bounds()
	z[0], z[1] = tri.zs.bounds()
	return x, y, z
}

func clone(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	return out
}
