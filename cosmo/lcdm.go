package cosmo

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/phil-mansfield/baofs/math/interpolate"
)

const (
	// Redshift tables cover [0, tableZMax]. Larger redshifts are integrated
	// directly.
	tableZMax = 5.0
	tableN    = 1001

	distanceNodes = 8
	growthNodes   = 96
	sigmaNodes    = 1024

	lnKMin, lnKMax = -11.5, 4.6 // ln(1e-5 / Mpc), ln(1e2 / Mpc)
)

// FlatLCDM is a flat ΛCDM cosmology with a cosmological constant and no
// radiation. It satisfies likelihood.Cosmology. Once constructed it is
// never modified.
type FlatLCDM struct {
	p      Params
	omegaL float64
	rsDrag float64

	chi, growth, rate *interpolate.Linear

	// Gauss-Legendre nodes in ln(k) and the weights, pre-multiplied by
	// k^3 P(k) up to normalisation, used by Sigma.
	ks, kWeights []float64
	var8         float64
}

// NewFlatLCDM tabulates distances and growth for the cosmology p.
func NewFlatLCDM(p Params) (*FlatLCDM, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &FlatLCDM{p: p, omegaL: 1 - p.OmegaM}
	c.rsDrag = soundHorizonDrag(p)

	dz := tableZMax / float64(tableN-1)
	chis := make([]float64, tableN)
	ds := make([]float64, tableN)
	fs := make([]float64, tableN)
	invE := func(z float64) float64 { return 1 / c.E(z) }
	for i := range chis {
		z := float64(i) * dz
		if i > 0 {
			chis[i] = chis[i-1] + c.hubbleDistance()*
				quad.Fixed(invE, z-dz, z, distanceNodes, nil, 0)
		}
		ds[i], fs[i] = c.growthDirect(z)
	}
	d0 := ds[0]
	for i := range ds {
		ds[i] /= d0
	}
	c.chi = interpolate.NewUniformLinear(0, dz, chis)
	c.growth = interpolate.NewUniformLinear(0, dz, ds)
	c.rate = interpolate.NewUniformLinear(0, dz, fs)

	c.ks = make([]float64, sigmaNodes)
	c.kWeights = make([]float64, sigmaNodes)
	quad.Legendre{}.FixedLocations(c.ks, c.kWeights, lnKMin, lnKMax)
	for i, lnk := range c.ks {
		k := math.Exp(lnk)
		t := noWiggleTransfer(p, k)
		c.ks[i] = k
		c.kWeights[i] *= k * k * k * math.Pow(k, p.NS) * t * t
	}
	c.var8 = c.variance(8 / p.H)

	return c, nil
}

// Params returns the parameters c was built from.
func (c *FlatLCDM) Params() Params { return c.p }

// E returns H(z) / H0.
func (c *FlatLCDM) E(z float64) float64 {
	return HubbleFrac(c.p.OmegaM, c.omegaL, z)
}

// hubbleDistance returns c / H0 in Mpc.
func (c *FlatLCDM) hubbleDistance() float64 {
	return SpeedOfLight / (100 * c.p.H)
}

// H returns H0 / (100 km/s/Mpc).
func (c *FlatLCDM) H() float64 { return c.p.H }

// Hubble returns H(z) / c in 1/Mpc.
func (c *FlatLCDM) Hubble(z float64) float64 {
	return c.E(z) / c.hubbleDistance()
}

// ComovingDistance returns the line-of-sight comoving distance to z in Mpc.
// In a flat universe this is also the transverse comoving distance, D_M.
func (c *FlatLCDM) ComovingDistance(z float64) float64 {
	if c.tabulated(z) {
		return c.chi.Eval(z)
	}
	invE := func(zp float64) float64 { return 1 / c.E(zp) }
	return c.hubbleDistance() * quad.Fixed(invE, 0, z, 8*growthNodes, nil, 0)
}

// AngularDistance returns the angular diameter distance to z in Mpc.
func (c *FlatLCDM) AngularDistance(z float64) float64 {
	return c.ComovingDistance(z) / (1 + z)
}

// RsDrag returns the comoving sound horizon at the baryon drag epoch in Mpc.
func (c *FlatLCDM) RsDrag() float64 { return c.rsDrag }

// GrowthFactor returns the linear growth factor normalised to 1 at z = 0.
func (c *FlatLCDM) GrowthFactor(z float64) float64 {
	if c.tabulated(z) {
		return c.growth.Eval(z)
	}
	d0, _ := c.growthDirect(0)
	d, _ := c.growthDirect(z)
	return d / d0
}

// GrowthRate returns the scale-independent growth rate f = dlnD/dlna.
func (c *FlatLCDM) GrowthRate(z float64) float64 {
	if c.tabulated(z) {
		return c.rate.Eval(z)
	}
	_, f := c.growthDirect(z)
	return f
}

// tabulated reports whether z lies within the redshift tables.
func (c *FlatLCDM) tabulated(z float64) bool {
	lo, hi := c.chi.Bounds()
	return z >= lo && z <= hi
}

// Sigma returns the rms linear density fluctuation in spheres of radius R
// Mpc at redshift z.
func (c *FlatLCDM) Sigma(R, z float64) float64 {
	return c.p.Sigma8 * math.Sqrt(c.variance(R)/c.var8) * c.GrowthFactor(z)
}

// growthDirect returns the unnormalised growth factor and the growth rate
// at z using D(a) ∝ E(a) ∫_0^a da' / (a' E(a'))^3.
func (c *FlatLCDM) growthDirect(z float64) (d, f float64) {
	a := 1 / (1 + z)
	integrand := func(ap float64) float64 {
		x := ap * c.E(1/ap-1)
		return 1 / (x * x * x)
	}
	integral := quad.Fixed(integrand, 0, a, growthNodes, nil, 0)

	e := c.E(z)
	d = 2.5 * c.p.OmegaM * e * integral
	dlnE := -1.5 * c.p.OmegaM / (a * a * a * e * e)
	f = dlnE + 1/(a*a*e*e*e*integral)
	return d, f
}

// variance returns the unnormalised variance of the density field smoothed
// with a tophat of radius R.
func (c *FlatLCDM) variance(R float64) float64 {
	sum := 0.0
	for i, k := range c.ks {
		w := tophatWindow(k * R)
		sum += c.kWeights[i] * w * w
	}
	return sum
}
