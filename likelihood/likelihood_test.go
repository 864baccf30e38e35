package likelihood

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCosmology is a toy cosmology with simple closed forms for every
// quantity.
type testCosmology struct {
	h, rs, sigma8 float64
}

func newTestCosmology() *testCosmology {
	return &testCosmology{h: 0.7, rs: 147.0, sigma8: 0.8}
}

func (c *testCosmology) AngularDistance(z float64) float64 {
	return 3000 * z / (1 + z) / (1 + 0.25*z)
}
func (c *testCosmology) Hubble(z float64) float64 {
	return c.h / 2997.92458 * math.Sqrt(0.3*math.Pow(1+z, 3)+0.7)
}
func (c *testCosmology) RsDrag() float64              { return c.rs }
func (c *testCosmology) GrowthRate(z float64) float64 { return 0.5 + 0.3*z/(1+z) }
func (c *testCosmology) Sigma(R, z float64) float64 {
	return c.sigma8 * (8 / c.h / R) / (1 + 0.5*z)
}
func (c *testCosmology) H() float64 { return c.h }

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{DMOverRd, DHOverRd, DVOverRd, FSigma8} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("DA_over_rd")
	assert.Error(t, err)

	kinds, err := ParseKinds([]string{"f_sigma8", "DV_over_rd"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{FSigma8, DVOverRd}, kinds)
	_, err = ParseKinds([]string{"f_sigma8", "sigma8"})
	assert.Error(t, err)

	assert.Panics(t, func() { _ = Kind(17).String() })
}

func TestTheory(t *testing.T) {
	c := newTestCosmology()
	z, rd := 0.5, 150.0

	dm := c.AngularDistance(z) * 1.5
	dh := 1 / c.Hubble(z)
	tests := []struct {
		k    Kind
		want float64
	}{
		{DMOverRd, dm / rd},
		{DHOverRd, dh / rd},
		{DVOverRd, math.Pow(dm*dm*z*dh, 1.0/3) / rd},
		{FSigma8, c.GrowthRate(z) * c.sigma8 / 1.25},
	}

	for _, test := range tests {
		assert.InEpsilon(t, test.want, test.k.Theory(c, z, rd), 1e-12,
			"kind = %s", test.k)
	}
}

func TestRequirementsMerge(t *testing.T) {
	r := Requirements{Output: []string{"tCl"}, PkMaxHMpc: 5, ZMaxPk: 0.5}
	got := r.Merge(GrowthRequirements)
	want := Requirements{
		Output: []string{"tCl", "mPk"}, PkMaxHMpc: 5, ZMaxPk: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}

	got = GrowthRequirements.Merge(GrowthRequirements)
	if diff := cmp.Diff(GrowthRequirements, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"mPk"}, GrowthRequirements.Output)
}

func TestGroupBins(t *testing.T) {
	obs := []Observation{
		{Z: 0.38, Value: 1, Kind: DMOverRd},
		{Z: 0.51, Value: 2, Kind: DMOverRd},
		{Z: 0.38, Value: 3, Kind: DHOverRd},
		{Z: 0.51, Value: 4, Kind: DHOverRd},
	}
	bins := GroupBins(obs)
	require.Len(t, bins, 2)
	assert.Equal(t, 0.38, bins[0].Z)
	assert.Equal(t, []Kind{DMOverRd, DHOverRd}, bins[0].Kinds())
	assert.Equal(t, 3.0, bins[0].Obs[1].Value)
	assert.Equal(t, 0.51, bins[1].Z)
	assert.Equal(t, 4.0, bins[1].Obs[1].Value)
}
