/*package likelihood contains BAO and growth-rate likelihoods which compare
the distances and f*sigma8 predicted by a cosmology against survey
measurements.

Two kinds of likelihood are supported. Gaussian likelihoods contract a
theory-minus-data residual vector with an inverse covariance matrix. Grid
likelihoods look up a precomputed chi^2 scan with trilinear interpolation.
Both are immutable once constructed and can be evaluated concurrently.
*/
package likelihood

import (
	"fmt"
	"math"
	"slices"
)

// Cosmology is the set of derived quantities a likelihood needs from a
// cosmological model. Distances are in Mpc and Hubble(z) is in 1/Mpc.
type Cosmology interface {
	// AngularDistance returns the angular diameter distance, D_A(z).
	AngularDistance(z float64) float64
	// Hubble returns H(z)/c.
	Hubble(z float64) float64
	// RsDrag returns the comoving sound horizon at the baryon drag epoch.
	RsDrag() float64
	// GrowthRate returns the scale-independent growth rate, dlnD/dlna.
	GrowthRate(z float64) float64
	// Sigma returns the rms linear density fluctuation in spheres of radius
	// R Mpc at redshift z.
	Sigma(R, z float64) float64
	// H returns H0 / (100 km/s/Mpc).
	H() float64
}

// Requirements are the settings a Boltzmann solver needs in order to
// compute the quantities a likelihood asks for.
type Requirements struct {
	Output    []string
	PkMaxHMpc float64 // P_k_max_h/Mpc
	ZMaxPk    float64 // z_max_pk
}

// GrowthRequirements are needed to compute sigma_8(z) up to z = 1 with
// sufficient precision.
var GrowthRequirements = Requirements{
	Output: []string{"mPk"}, PkMaxHMpc: 1, ZMaxPk: 1,
}

// Merge returns requirements which satisfy both r and r2.
func (r Requirements) Merge(r2 Requirements) Requirements {
	out := Requirements{
		PkMaxHMpc: math.Max(r.PkMaxHMpc, r2.PkMaxHMpc),
		ZMaxPk:    math.Max(r.ZMaxPk, r2.ZMaxPk),
	}
	out.Output = append(out.Output, r.Output...)
	for _, o := range r2.Output {
		if !slices.Contains(out.Output, o) {
			out.Output = append(out.Output, o)
		}
	}
	return out
}

// Likelihood is a single likelihood module.
type Likelihood interface {
	Name() string
	// LogLkl evaluates the likelihood for the cosmology c.
	LogLkl(c Cosmology) float64
	Requirements() Requirements
}

var (
	_ Likelihood = &Gaussian{}
	_ Likelihood = &Grid{}
)

// Kind is the type of a measured quantity.
type Kind int

const (
	DMOverRd Kind = iota
	DHOverRd
	DVOverRd
	FSigma8
)

var kindNames = []string{"DM_over_rd", "DH_over_rd", "DV_over_rd", "f_sigma8"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		panic(fmt.Sprintf("Unknown Kind %d.", int(k)))
	}
	return kindNames[k]
}

// ParseKind converts the name used in observation files to a Kind.
func ParseKind(s string) (Kind, error) {
	for i := range kindNames {
		if s == kindNames[i] {
			return Kind(i), nil
		}
	}
	return -1, fmt.Errorf("The quantity '%s' isn't recognized. The "+
		"supported quantities are %v.", s, kindNames)
}

// ParseKinds applies ParseKind to a list of names.
func ParseKinds(strs []string) ([]Kind, error) {
	out := make([]Kind, len(strs))
	for i := range strs {
		var err error
		if out[i], err = ParseKind(strs[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Theory returns the prediction of c for a quantity of type k at redshift z,
// given the sound horizon rd.
func (k Kind) Theory(c Cosmology, z, rd float64) float64 {
	switch k {
	case DMOverRd:
		return comovingDistance(c, z) / rd
	case DHOverRd:
		return 1 / (c.Hubble(z) * rd)
	case DVOverRd:
		dm := comovingDistance(c, z)
		return math.Cbrt(dm*dm*z/c.Hubble(z)) / rd
	case FSigma8:
		return fSigma8(c, z)
	}
	panic(fmt.Sprintf("Unknown Kind %d.", int(k)))
}

func comovingDistance(c Cosmology, z float64) float64 {
	return c.AngularDistance(z) * (1 + z)
}

func fSigma8(c Cosmology, z float64) float64 {
	return c.GrowthRate(z) * c.Sigma(8/c.H(), z)
}
