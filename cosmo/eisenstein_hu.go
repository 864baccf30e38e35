package cosmo

import (
	"math"
)

// Fitting formulae from Eisenstein & Hu (1998), ApJ 496, 605. Wavenumbers
// are in 1/Mpc and lengths in Mpc.

// soundHorizonDrag returns the comoving sound horizon at the drag epoch
// (EH98 eqs. 2-6).
func soundHorizonDrag(p Params) float64 {
	wm, wb := p.OmegaM*p.H*p.H, p.OmegaB*p.H*p.H
	theta := p.TCMB / 2.7
	theta2, theta4 := theta*theta, theta*theta*theta*theta

	zEq := 2.50e4 * wm / theta4
	kEq := 7.46e-2 * wm / theta2

	b1 := 0.313 * math.Pow(wm, -0.419) * (1 + 0.607*math.Pow(wm, 0.674))
	b2 := 0.238 * math.Pow(wm, 0.223)
	zd := 1291 * math.Pow(wm, 0.251) / (1 + 0.659*math.Pow(wm, 0.828)) *
		(1 + b1*math.Pow(wb, b2))

	r := func(z float64) float64 { return 31.5 * wb / theta4 * (1e3 / z) }
	rd, req := r(zd), r(zEq)

	return 2 / (3 * kEq) * math.Sqrt(6/req) *
		math.Log((math.Sqrt(1+rd)+math.Sqrt(rd+req))/(1+math.Sqrt(req)))
}

// noWiggleTransfer returns the zero-baryon-oscillation transfer function
// (EH98 eqs. 26-31).
func noWiggleTransfer(p Params, k float64) float64 {
	wm, wb := p.OmegaM*p.H*p.H, p.OmegaB*p.H*p.H
	fb := p.OmegaB / p.OmegaM
	theta := p.TCMB / 2.7

	s := 44.5 * math.Log(9.83/wm) / math.Sqrt(1+10*math.Pow(wb, 0.75))
	alpha := 1 - 0.328*math.Log(431*wm)*fb + 0.38*math.Log(22.3*wm)*fb*fb
	ks4 := math.Pow(0.43*k*s, 4)
	gammaEff := p.OmegaM * p.H * (alpha + (1-alpha)/(1+ks4))

	q := k / p.H * theta * theta / gammaEff
	l0 := math.Log(2*math.E + 1.8*q)
	c0 := 14.2 + 731/(1+62.5*q)
	return l0 / (l0 + c0*q*q)
}

// tophatWindow is the Fourier transform of a normalised spherical tophat.
func tophatWindow(x float64) float64 {
	if x < 1e-3 {
		return 1 - x*x/10
	}
	return 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
}
