package likelihood

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scanRows struct {
	at, ap, fs, chi2 []float64
}

// gridRows tabulates f on the Cartesian product of the axes, with the
// f*sigma8 axis varying fastest.
func gridRows(ats, aps, fss []float64, f func(at, ap, fs float64) float64) scanRows {
	rows := scanRows{}
	for _, at := range ats {
		for _, ap := range aps {
			for _, fs := range fss {
				rows.at = append(rows.at, at)
				rows.ap = append(rows.ap, ap)
				rows.fs = append(rows.fs, fs)
				rows.chi2 = append(rows.chi2, f(at, ap, fs))
			}
		}
	}
	return rows
}

func (r scanRows) text() string {
	lines := []string{"# alpha_t alpha_p fsigma8 chi2"}
	for i := range r.at {
		lines = append(lines, fmt.Sprintf("%.17g %.17g %.17g %.17g",
			r.at[i], r.ap[i], r.fs[i], r.chi2[i]))
	}
	return strings.Join(lines, "\n") + "\n"
}

func cubeScan(t *testing.T) *Scan {
	t.Helper()
	rows := gridRows([]float64{0, 1}, []float64{0, 1}, []float64{0, 1},
		func(at, ap, fs float64) float64 { return at + 2*ap + 4*fs })
	s, err := NewScan(rows.at, rows.ap, rows.fs, rows.chi2)
	require.NoError(t, err)
	return s
}

func TestScanCube(t *testing.T) {
	s := cubeScan(t)

	for ix := 0; ix < 2; ix++ {
		for iy := 0; iy < 2; iy++ {
			for iz := 0; iz < 2; iz++ {
				x, y, z := float64(ix), float64(iy), float64(iz)
				want := x + 2*y + 4*z
				assert.Equal(t, want, s.tri.Eval(x, y, z),
					"corner (%d, %d, %d)", ix, iy, iz)
				assert.Equal(t, want, s.at(ix, iy, iz))
			}
		}
	}

	assert.InDelta(t, 3.5, s.Chi2(0.5, 0.5, 0.5), 1e-12)
	assert.InDelta(t, 0.25+2*0.75+4*0.5, s.Chi2(0.25, 0.75, 0.5), 1e-12)
}

func TestScanBoundary(t *testing.T) {
	s := cubeScan(t)

	tests := [][3]float64{
		{0, 0.5, 0.5}, {1, 0.5, 0.5},
		{0.5, 0, 0.5}, {0.5, 1, 0.5},
		{0.5, 0.5, 0}, {0.5, 0.5, 1},
		{-0.1, 0.5, 0.5}, {0.5, 1.1, 0.5}, {0.5, 0.5, 7},
		{math.NaN(), 0.5, 0.5}, {0.5, math.Inf(1), 0.5},
	}
	for _, x := range tests {
		assert.Equal(t, Sentinel, s.Chi2(x[0], x[1], x[2]), "x = %v", x)
	}

	assert.NotEqual(t, Sentinel, s.Chi2(1e-9, 1-1e-9, 0.5))
}

func TestScanRowOrder(t *testing.T) {
	f := func(at, ap, fs float64) float64 {
		return (at-1)*(at-1) + 3*(ap-1)*(ap-1) + 10*(fs-0.42)*(fs-0.42)
	}
	rows := gridRows(
		[]float64{0.8, 0.9, 1.0, 1.1, 1.2}, []float64{0.85, 1.0, 1.15},
		[]float64{0.3, 0.4, 0.5, 0.6}, f,
	)
	s, err := NewScan(rows.at, rows.ap, rows.fs, rows.chi2)
	require.NoError(t, err)

	n := len(rows.at)
	rev := scanRows{}
	for i := n - 1; i >= 0; i-- {
		rev.at = append(rev.at, rows.at[i])
		rev.ap = append(rev.ap, rows.ap[i])
		rev.fs = append(rev.fs, rows.fs[i])
		rev.chi2 = append(rev.chi2, rows.chi2[i])
	}
	sRev, err := NewScan(rev.at, rev.ap, rev.fs, rev.chi2)
	require.NoError(t, err)

	for _, x := range [][3]float64{
		{1.0, 1.0, 0.45}, {0.93, 1.07, 0.33}, {1.15, 0.9, 0.55},
	} {
		assert.Equal(t, s.Chi2(x[0], x[1], x[2]),
			sRev.Chi2(x[0], x[1], x[2]))
	}

	// Grid nodes are reproduced exactly.
	assert.InDelta(t, f(1.1, 1.0, 0.4), s.Chi2(1.1, 1.0, 0.4), 1e-12)

	at, ap, fs, chi2 := s.Minimum()
	assert.Equal(t, [4]float64{1.0, 1.0, 0.4, f(1.0, 1.0, 0.4)},
		[4]float64{at, ap, fs, chi2})

	xs, prof := s.Profile(AlphaT)
	if diff := cmp.Diff([]float64{0.8, 0.9, 1.0, 1.1, 1.2}, xs); diff != "" {
		t.Errorf("Profile axis mismatch (-want +got):\n%s", diff)
	}
	for i := range xs {
		assert.Equal(t, f(xs[i], 1.0, 0.4), prof[i])
	}

	lim := s.Limits()
	assert.Equal(t, [3][2]float64{{0.8, 1.2}, {0.85, 1.15}, {0.3, 0.6}}, lim)
	assert.Equal(t, []float64{0.85, 1.0, 1.15}, s.Axis(AlphaP))
}

func TestScanErrors(t *testing.T) {
	flat := func(at, ap, fs float64) float64 { return 1 }
	full := gridRows([]float64{0, 1}, []float64{0, 1, 2}, []float64{0, 1}, flat)
	n := len(full.at)

	dup := gridRows([]float64{0, 1}, []float64{0, 1, 2}, []float64{0, 1}, flat)
	dup.at[n-1], dup.ap[n-1], dup.fs[n-1] = dup.at[0], dup.ap[0], dup.fs[0]

	nan := gridRows([]float64{0, 1}, []float64{0, 1, 2}, []float64{0, 1}, flat)
	nan.chi2[3] = math.NaN()

	ragged := gridRows([]float64{0, 1}, []float64{0, 1, 2}, []float64{0, 1}, flat)
	ragged.fs[n-1] = 0.5

	single := gridRows([]float64{0, 1}, []float64{1}, []float64{0, 1}, flat)

	tests := []struct {
		name string
		rows scanRows
	}{
		{"missing row", scanRows{
			full.at[1:], full.ap[1:], full.fs[1:], full.chi2[1:],
		}},
		{"duplicate row", dup},
		{"NaN chi2", nan},
		{"ragged axis", ragged},
		{"single-valued axis", single},
		{"unequal columns", scanRows{full.at, full.ap, full.fs, full.chi2[1:]}},
		{"empty", scanRows{}},
	}

	for _, test := range tests {
		_, err := NewScan(test.rows.at, test.rows.ap, test.rows.fs,
			test.rows.chi2)
		assert.Error(t, err, test.name)
	}
}

func TestReadScan(t *testing.T) {
	dir := t.TempDir()
	rows := gridRows([]float64{0.9, 1.1}, []float64{0.9, 1.1},
		[]float64{0.3, 0.6}, func(at, ap, fs float64) float64 {
			return at * ap * fs
		})
	fname := writeFile(t, dir, "scan.txt", rows.text())

	s, err := ReadScan(fname)
	require.NoError(t, err)
	assert.InDelta(t, 0.45, s.Chi2(1, 1, 0.45), 1e-12)

	_, err = ReadScan(writeFile(t, dir, "three.txt", "1 2 3\n"))
	assert.Error(t, err)
	_, err = ReadScan(writeFile(t, dir, "text.txt", "1 2 3 x\n"))
	assert.Error(t, err)
}

func TestChi2Interpolators(t *testing.T) {
	s := cubeScan(t)
	ci, err := NewChi2Interpolators(map[string]*Scan{"cf": s}, 10, 20)
	require.NoError(t, err)

	chi2, err := ci.Chi2("cf", 5, 10, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, chi2, 1e-12)

	chi2, err = ci.Chi2("cf", 10, 10, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Sentinel, chi2)

	_, err = ci.Chi2("pk", 5, 10, 0.5)
	assert.Error(t, err)

	assert.True(t, ci.Has("cf"))
	assert.False(t, ci.Has("pk"))
	assert.Equal(t, []string{"cf"}, ci.Tags())
	assert.Same(t, s, ci.Scan("cf"))

	_, err = NewChi2Interpolators(map[string]*Scan{"cf": s}, 0, 20)
	assert.Error(t, err)
	_, err = NewChi2Interpolators(map[string]*Scan{}, 10, 20)
	assert.Error(t, err)
	_, err = NewChi2Interpolators(map[string]*Scan{"cf": nil}, 10, 20)
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{AlphaT, AlphaP, FSigma8Axis} {
		got, err := ParseAxis(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAxis("alpha_iso")
	assert.Error(t, err)
}
