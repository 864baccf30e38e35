/*package cosmo contains a reference flat ΛCDM cosmology which provides the
derived quantities the likelihoods need: distances, the Hubble rate, the
sound horizon at the drag epoch, and linear growth.*/
package cosmo

import (
	"fmt"
	"math"
)

// SpeedOfLight is c in km/s.
const SpeedOfLight = 299792.458

// HubbleFrac calculates h(z) = H(z)/H0. Here H(z) is from Hubble's Law,
// H(z)**2 + k (c/a)**2 = H0**2 h100**2 (OmegaR a**-4 + OmegaM a**-3 + OmegaL).
// An alternate formulation is h(a) = da/dt / (a H0). Assumes k, r = 0.
func HubbleFrac(omegaM, omegaL, z float64) float64 {
	return math.Sqrt(omegaM*math.Pow(1.0+z, 3.0) + omegaL)
}

// Params are the parameters of a flat ΛCDM cosmology.
type Params struct {
	H      float64 // H0 / (100 km/s/Mpc)
	OmegaM float64 // total matter, baryons included
	OmegaB float64
	NS     float64 // scalar spectral index
	Sigma8 float64 // at z = 0
	TCMB   float64 // K
}

// DefaultParams returns the Planck 2018 TT,TE,EE+lowE+lensing+BAO best fit.
func DefaultParams() Params {
	return Params{
		H:      0.6766,
		OmegaM: 0.3111,
		OmegaB: 0.04897,
		NS:     0.9665,
		Sigma8: 0.8102,
		TCMB:   2.7255,
	}
}

// Validate returns an error if p doesn't describe a usable cosmology.
func (p Params) Validate() error {
	switch {
	case !(p.H > 0 && p.H <= 2):
		return fmt.Errorf("The variable 'H' is set to %g, but it must be "+
			"in the range (0, 2].", p.H)
	case !(p.OmegaM > 0 && p.OmegaM <= 1):
		return fmt.Errorf("The variable 'OmegaM' is set to %g, but it "+
			"must be in the range (0, 1].", p.OmegaM)
	case !(p.OmegaB > 0 && p.OmegaB < p.OmegaM):
		return fmt.Errorf("The variable 'OmegaB' is set to %g, but it "+
			"must be positive and smaller than OmegaM = %g.",
			p.OmegaB, p.OmegaM)
	case !(p.NS > 0):
		return fmt.Errorf("The variable 'NS' is set to %g, but it must "+
			"be positive.", p.NS)
	case !(p.Sigma8 > 0):
		return fmt.Errorf("The variable 'Sigma8' is set to %g, but it "+
			"must be positive.", p.Sigma8)
	case !(p.TCMB > 0):
		return fmt.Errorf("The variable 'TCMB' is set to %g, but it must "+
			"be positive.", p.TCMB)
	}
	return nil
}
