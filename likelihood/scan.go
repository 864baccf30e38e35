package likelihood

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/baofs/cmd/catalog"
	"github.com/phil-mansfield/baofs/math/interpolate"
)

// Sentinel is the chi^2 returned for points on or outside the edge of a
// scan.
const Sentinel = 1e-300

// Axis names one of the dimensions of a Scan.
type Axis int

const (
	AlphaT Axis = iota
	AlphaP
	FSigma8Axis
)

func (a Axis) String() string {
	switch a {
	case AlphaT:
		return "alpha_t"
	case AlphaP:
		return "alpha_p"
	case FSigma8Axis:
		return "f_sigma8"
	}
	panic(fmt.Sprintf("Unknown Axis %d.", int(a)))
}

// ParseAxis converts the name of an axis to an Axis.
func ParseAxis(s string) (Axis, error) {
	for _, a := range []Axis{AlphaT, AlphaP, FSigma8Axis} {
		if s == a.String() {
			return a, nil
		}
	}
	return -1, fmt.Errorf("The axis '%s' isn't recognized. The supported "+
		"axes are alpha_t, alpha_p, and f_sigma8.", s)
}

// Scan is a chi^2 surface tabulated on a regular grid in
// (alpha_t, alpha_p, f*sigma8).
type Scan struct {
	axes [3][]float64
	vals []float64 // vals[ix + iy*nx + iz*nx*ny]
	tri  *interpolate.TriLinear
}

// ReadScan reads a four-column "alpha_t alpha_p fsigma8 chi2" table.
func ReadScan(fname string) (*Scan, error) {
	t, err := catalog.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	if err = t.CheckWidth(4); err != nil {
		return nil, fmt.Errorf("In %s: %w", fname, err)
	}
	cols := make([][]float64, 4)
	for i := range cols {
		if cols[i], err = t.Floats(i); err != nil {
			return nil, fmt.Errorf("In %s: %w", fname, err)
		}
	}

	s, err := NewScan(cols[0], cols[1], cols[2], cols[3])
	if err != nil {
		return nil, fmt.Errorf("In %s: %w", fname, err)
	}
	return s, nil
}

// NewScan builds a Scan from the flattened rows of a chi^2 table. Rows may
// be in any order, but together they must cover every combination of the
// distinct values in each of the first three columns exactly once.
func NewScan(alphaT, alphaP, fsigma8, chi2 []float64) (*Scan, error) {
	n := len(chi2)
	if len(alphaT) != n || len(alphaP) != n || len(fsigma8) != n {
		return nil, fmt.Errorf("Scan columns have lengths %d, %d, %d, "+
			"and %d.", len(alphaT), len(alphaP), len(fsigma8), n)
	}

	cols := [3][]float64{alphaT, alphaP, fsigma8}
	s := &Scan{}
	for a := range cols {
		if floats.HasNaN(cols[a]) {
			return nil, fmt.Errorf("The %s column contains NaN.", Axis(a))
		}
		s.axes[a] = uniqueSorted(cols[a])
		if len(s.axes[a]) < 2 {
			return nil, fmt.Errorf("The %s axis has %d distinct values, "+
				"but at least 2 are needed.", Axis(a), len(s.axes[a]))
		}
	}
	if floats.HasNaN(chi2) {
		return nil, fmt.Errorf("The chi2 column contains NaN.")
	}

	nx, ny, nz := len(s.axes[0]), len(s.axes[1]), len(s.axes[2])
	if nx*ny*nz != n {
		return nil, fmt.Errorf("The scan has %d rows, but its axes have "+
			"%d x %d x %d distinct values, so it isn't a complete grid.",
			n, nx, ny, nz)
	}

	index := [3]map[float64]int{}
	for a := range index {
		index[a] = make(map[float64]int, len(s.axes[a]))
		for i, x := range s.axes[a] {
			index[a][x] = i
		}
	}

	s.vals = make([]float64, n)
	filled := make([]bool, n)
	for i := 0; i < n; i++ {
		ix := index[0][alphaT[i]]
		iy := index[1][alphaP[i]]
		iz := index[2][fsigma8[i]]
		j := ix + iy*nx + iz*nx*ny
		if filled[j] {
			return nil, fmt.Errorf("The point (%g, %g, %g) appears more "+
				"than once in the scan.", alphaT[i], alphaP[i], fsigma8[i])
		}
		filled[j] = true
		s.vals[j] = chi2[i]
	}

	s.tri = interpolate.NewTriLinear(s.axes[0], s.axes[1], s.axes[2], s.vals)
	return s, nil
}

func uniqueSorted(xs []float64) []float64 {
	out := slices.Clone(xs)
	slices.Sort(out)
	return slices.Compact(out)
}

// Chi2 returns the interpolated chi^2 at a point. If any coordinate lies on
// or outside the edge of its axis, or is NaN, Sentinel is returned.
func (s *Scan) Chi2(alphaT, alphaP, fsigma8 float64) float64 {
	x := [3]float64{alphaT, alphaP, fsigma8}
	lim := s.Limits()
	for a := range x {
		lo, hi := lim[a][0], lim[a][1]
		if math.IsNaN(x[a]) || x[a] >= hi || x[a] <= lo {
			return Sentinel
		}
	}
	return s.tri.Eval(alphaT, alphaP, fsigma8)
}

// Axis returns the distinct values along the axis a.
func (s *Scan) Axis(a Axis) []float64 {
	return slices.Clone(s.axes[a])
}

// Limits returns the smallest and largest values along each axis.
func (s *Scan) Limits() [3][2]float64 {
	x, y, z := s.tri.Bounds()
	return [3][2]float64{x, y, z}
}

// Minimum returns the grid point with the smallest chi^2.
func (s *Scan) Minimum() (alphaT, alphaP, fsigma8, chi2 float64) {
	ix, iy, iz := s.unflatten(floats.MinIdx(s.vals))
	return s.axes[0][ix], s.axes[1][iy], s.axes[2][iz], s.at(ix, iy, iz)
}

// Profile returns the tabulated chi^2 along the axis a, holding the other
// two coordinates at the grid minimum.
func (s *Scan) Profile(a Axis) (xs, chi2 []float64) {
	idx := [3]int{}
	idx[0], idx[1], idx[2] = s.unflatten(floats.MinIdx(s.vals))

	xs = s.Axis(a)
	chi2 = make([]float64, len(xs))
	for i := range xs {
		idx[a] = i
		chi2[i] = s.at(idx[0], idx[1], idx[2])
	}
	return xs, chi2
}

func (s *Scan) at(ix, iy, iz int) float64 {
	nx, ny := len(s.axes[0]), len(s.axes[1])
	return s.vals[ix+iy*nx+iz*nx*ny]
}

func (s *Scan) unflatten(j int) (ix, iy, iz int) {
	nx, ny := len(s.axes[0]), len(s.axes[1])
	return j % nx, (j / nx) % ny, j / (nx * ny)
}

// Chi2Interpolators converts distances to alpha values and looks up the
// scan for a correlation-function tag.
type Chi2Interpolators struct {
	scans                      map[string]*Scan
	transverseFid, parallelFid float64
}

// NewChi2Interpolators creates a set of interpolators. Alphas are computed
// by dividing distances by transverseFid and parallelFid.
func NewChi2Interpolators(
	scans map[string]*Scan, transverseFid, parallelFid float64,
) (*Chi2Interpolators, error) {
	if len(scans) == 0 {
		return nil, fmt.Errorf("No chi2 scans were given.")
	} else if !(transverseFid > 0) || !(parallelFid > 0) {
		return nil, fmt.Errorf("The fiducial distances are %g and %g, "+
			"but both must be positive.", transverseFid, parallelFid)
	}

	ci := &Chi2Interpolators{
		scans:         make(map[string]*Scan, len(scans)),
		transverseFid: transverseFid,
		parallelFid:   parallelFid,
	}
	for tag, s := range scans {
		if s == nil {
			return nil, fmt.Errorf("The scan for '%s' is nil.", tag)
		}
		ci.scans[tag] = s
	}
	return ci, nil
}

// Has returns true if there is a scan for tag.
func (ci *Chi2Interpolators) Has(tag string) bool {
	_, ok := ci.scans[tag]
	return ok
}

// Scan returns the scan for tag, or nil.
func (ci *Chi2Interpolators) Scan(tag string) *Scan { return ci.scans[tag] }

// Tags returns the sorted tags of all scans.
func (ci *Chi2Interpolators) Tags() []string {
	out := make([]string, 0, len(ci.scans))
	for tag := range ci.scans {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

// Chi2 returns the interpolated chi^2 from the scan for tag.
func (ci *Chi2Interpolators) Chi2(
	tag string, transverse, parallel, fsigma8 float64,
) (float64, error) {
	s, ok := ci.scans[tag]
	if !ok {
		return 0, fmt.Errorf("There is no chi2 scan for the "+
			"correlation function '%s'.", tag)
	}
	return s.Chi2(transverse/ci.transverseFid, parallel/ci.parallelFid,
		fsigma8), nil
}
