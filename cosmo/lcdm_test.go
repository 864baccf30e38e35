package cosmo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func einsteinDeSitter(t *testing.T) *FlatLCDM {
	p := DefaultParams()
	p.OmegaM = 1
	c, err := NewFlatLCDM(p)
	require.NoError(t, err)
	return c
}

func TestHubbleFrac(t *testing.T) {
	tests := []struct {
		omegaM, omegaL, z, out float64
	}{
		{0.3, 0.7, 0, 1},
		{1, 0, 1, math.Sqrt(8)},
		{0.25, 0.75, 3, math.Sqrt(0.25*64 + 0.75)},
	}
	for i := range tests {
		out := HubbleFrac(tests[i].omegaM, tests[i].omegaL, tests[i].z)
		if math.Abs(out-tests[i].out) > 1e-12 {
			t.Errorf("%d) HubbleFrac(%g, %g, %g) = %g, expected %g.", i,
				tests[i].omegaM, tests[i].omegaL, tests[i].z, out, tests[i].out)
		}
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	mods := []func(p *Params){
		func(p *Params) { p.H = 0 },
		func(p *Params) { p.OmegaM = 1.2 },
		func(p *Params) { p.OmegaB = 0 },
		func(p *Params) { p.OmegaB = p.OmegaM },
		func(p *Params) { p.NS = -1 },
		func(p *Params) { p.Sigma8 = 0 },
		func(p *Params) { p.TCMB = math.NaN() },
	}
	for i, mod := range mods {
		p := DefaultParams()
		mod(&p)
		assert.Error(t, p.Validate(), "%d) %+v", i, p)
		_, err := NewFlatLCDM(p)
		assert.Error(t, err, "%d) %+v", i, p)
	}
}

func TestEinsteinDeSitterDistances(t *testing.T) {
	c := einsteinDeSitter(t)
	dh := SpeedOfLight / (100 * c.H())

	for _, z := range []float64{0, 0.1, 0.38, 1, 2.5, 5, 7} {
		chi := 2 * dh * (1 - 1/math.Sqrt(1+z))
		assert.InDelta(t, chi, c.ComovingDistance(z), 1e-5*dh, "z = %g", z)
		assert.InDelta(t, chi/(1+z), c.AngularDistance(z), 1e-5*dh,
			"z = %g", z)
		assert.InDelta(t, math.Pow(1+z, 1.5)/dh, c.Hubble(z), 1e-12,
			"z = %g", z)
	}
}

func TestEinsteinDeSitterGrowth(t *testing.T) {
	c := einsteinDeSitter(t)
	for _, z := range []float64{0, 0.15, 0.61, 1, 4.9, 6} {
		assert.InDelta(t, 1/(1+z), c.GrowthFactor(z), 1e-5, "z = %g", z)
		assert.InDelta(t, 1.0, c.GrowthRate(z), 1e-5, "z = %g", z)
	}
}

func TestLCDMGrowth(t *testing.T) {
	c, err := NewFlatLCDM(DefaultParams())
	require.NoError(t, err)

	prev := c.GrowthFactor(0)
	assert.InDelta(t, 1.0, prev, 1e-12)
	for _, z := range []float64{0.5, 1, 2, 4} {
		d := c.GrowthFactor(z)
		assert.Less(t, d, prev)
		prev = d

		// f ≈ Omega_m(z)^0.55 holds to better than a percent in ΛCDM.
		p := c.Params()
		omz := p.OmegaM * math.Pow(1+z, 3) / math.Pow(c.E(z), 2)
		assert.InEpsilon(t, math.Pow(omz, 0.55), c.GrowthRate(z), 0.01,
			"z = %g", z)
	}
}

func TestTablesMatchDirectIntegration(t *testing.T) {
	c, err := NewFlatLCDM(DefaultParams())
	require.NoError(t, err)

	for _, z := range []float64{0.15, 0.38, 0.51, 0.61, 0.845, 3.3} {
		d0, _ := c.growthDirect(0)
		d, f := c.growthDirect(z)
		assert.InEpsilon(t, d/d0, c.GrowthFactor(z), 1e-4, "z = %g", z)
		assert.InEpsilon(t, f, c.GrowthRate(z), 1e-4, "z = %g", z)
	}
}

func TestTabulatedRange(t *testing.T) {
	c, err := NewFlatLCDM(DefaultParams())
	require.NoError(t, err)

	assert.True(t, c.tabulated(0))
	assert.True(t, c.tabulated(4.99))
	assert.False(t, c.tabulated(5.01))
	assert.False(t, c.tabulated(-0.01))

	// Past the tables, values come from direct integration and must join
	// on smoothly.
	assert.InEpsilon(t, c.ComovingDistance(4.99), c.ComovingDistance(5.01),
		1e-2)
	assert.InEpsilon(t, c.GrowthFactor(4.99), c.GrowthFactor(5.01), 1e-2)
}

func TestRsDrag(t *testing.T) {
	c, err := NewFlatLCDM(DefaultParams())
	require.NoError(t, err)
	// The EH98 fit runs a couple of percent above Boltzmann codes' 147 Mpc.
	assert.InDelta(t, 150, c.RsDrag(), 5)
}

func TestSigma(t *testing.T) {
	p := DefaultParams()
	c, err := NewFlatLCDM(p)
	require.NoError(t, err)

	r8 := 8 / c.H()
	assert.InDelta(t, p.Sigma8, c.Sigma(r8, 0), 1e-12)
	assert.InDelta(t, p.Sigma8*c.GrowthFactor(0.7), c.Sigma(r8, 0.7), 1e-12)

	assert.Greater(t, c.Sigma(r8/2, 0), c.Sigma(r8, 0))
	assert.Less(t, c.Sigma(2*r8, 0), c.Sigma(r8, 0))

	d0, _ := c.growthDirect(0)
	for _, z := range []float64{0.005, 0.15, 0.51, 1.5} {
		d, _ := c.growthDirect(z)
		assert.InEpsilon(t, d/d0, c.Sigma(r8, z)/p.Sigma8, 1e-4,
			"z = %g", z)
	}
}

func TestGrowthFactorReference(t *testing.T) {
	c, err := NewFlatLCDM(DefaultParams())
	require.NoError(t, err)

	// D(z)/D(0) for OmegaM = 0.3111, from a midpoint-rule integration
	// with 2e5 steps.
	tests := []struct {
		z, d float64
	}{
		{0.5, 0.770012},
		{1, 0.608041},
		{2, 0.418234},
	}

	for i := range tests {
		d := c.GrowthFactor(tests[i].z)
		if math.Abs(d-tests[i].d) > 1e-4 {
			t.Errorf("%d) Expected GrowthFactor(%g) = %g, got %g.",
				i, tests[i].z, tests[i].d, d)
		}
	}
}

func TestTophatWindow(t *testing.T) {
	assert.Equal(t, 1.0, tophatWindow(0))
	for _, x := range []float64{1e-3, 0.1, 1, 4.4934} {
		exact := 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
		assert.InDelta(t, exact, tophatWindow(x), 1e-9, "x = %g", x)
	}
}
