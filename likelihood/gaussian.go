package likelihood

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/baofs/cmd/catalog"
)

const (
	BOSSDR12Name = "bao_fs_boss_dr12_z1z2"
	SDSSMGSName  = "bao_fs_sdss_mgs"

	// Relative tolerance on C_ij = C_ji.
	symmetryTol = 1e-8
	// Condition numbers above this are logged as a warning.
	maxCond = 1e12
)

// GaussianConfig configures a Gaussian likelihood.
type GaussianConfig struct {
	Name string
	// RsRescale multiplies the sound horizon returned by the cosmology.
	RsRescale float64
	// Layout is the order of quantities within each bin, which must match
	// the row order of the covariance matrix. If empty, the order of the
	// first bin in the observation file is used.
	Layout []Kind
}

// BOSSDR12Config is the BOSS DR12 consensus BAO+FS likelihood for the two
// lower redshift bins.
func BOSSDR12Config() GaussianConfig {
	return GaussianConfig{
		Name: BOSSDR12Name, RsRescale: 1,
		Layout: []Kind{DMOverRd, DHOverRd, FSigma8},
	}
}

// SDSSMGSConfig is the SDSS DR7 main galaxy sample BAO+FS likelihood.
func SDSSMGSConfig() GaussianConfig {
	return GaussianConfig{
		Name: SDSSMGSName, RsRescale: 1,
		Layout: []Kind{FSigma8, DVOverRd},
	}
}

// Preset returns the configuration of a known survey.
func Preset(name string) (GaussianConfig, bool) {
	switch name {
	case BOSSDR12Name:
		return BOSSDR12Config(), true
	case SDSSMGSName:
		return SDSSMGSConfig(), true
	}
	return GaussianConfig{}, false
}

// Gaussian is a likelihood which is Gaussian in the measured quantities:
// loglkl = -chi^2/2 with chi^2 = r^T C^-1 r, where r is theory - data.
type Gaussian struct {
	name      string
	rsRescale float64
	layout    []Kind
	zs        []float64
	data      []float64 // bin-major, ordered by layout within each bin
	cov       *mat.SymDense
	invCov    *mat.SymDense
}

// ReadGaussian reads an observation table and a covariance matrix and
// constructs a Gaussian likelihood from them.
func ReadGaussian(config GaussianConfig, dataFile, covFile string) (*Gaussian, error) {
	obs, err := ReadObservations(dataFile)
	if err != nil {
		return nil, err
	}
	t, err := catalog.ReadFile(covFile)
	if err != nil {
		return nil, err
	}
	cov, err := t.Matrix()
	if err != nil {
		return nil, fmt.Errorf("In %s: %w", covFile, err)
	}

	g, err := NewGaussian(config, obs, cov)
	if err != nil {
		return nil, fmt.Errorf("Could not construct likelihood '%s' from "+
			"%s and %s: %w", config.Name, dataFile, covFile, err)
	}
	return g, nil
}

// NewGaussian constructs a Gaussian likelihood. cov is row-major and must
// be symmetric and positive definite.
func NewGaussian(config GaussianConfig, obs []Observation, cov [][]float64) (*Gaussian, error) {
	if config.Name == "" {
		return nil, fmt.Errorf("The likelihood has no name.")
	} else if !(config.RsRescale > 0) || math.IsInf(config.RsRescale, 0) {
		return nil, fmt.Errorf("RsRescale is %g, but it must be a "+
			"positive number.", config.RsRescale)
	} else if len(obs) == 0 {
		return nil, fmt.Errorf("There are no observations.")
	}

	bins := GroupBins(obs)
	layout := slices.Clone(config.Layout)
	if len(layout) == 0 {
		layout = bins[0].Kinds()
	}
	if err := checkLayout(layout); err != nil {
		return nil, err
	}

	g := &Gaussian{
		name:      config.Name,
		rsRescale: config.RsRescale,
		layout:    layout,
		zs:        make([]float64, len(bins)),
		data:      make([]float64, 0, len(bins)*len(layout)),
	}

	for i, b := range bins {
		g.zs[i] = b.Z
		vals, err := binValues(b, layout)
		if err != nil {
			return nil, err
		}
		g.data = append(g.data, vals...)
	}

	var err error
	if g.cov, err = symmetricMatrix(cov, len(g.data)); err != nil {
		return nil, err
	}
	if g.invCov, err = invert(g.cov); err != nil {
		return nil, err
	}

	slog.Debug("loaded likelihood", "name", g.name, "bins", len(g.zs),
		"points", len(g.data), "layout", fmt.Sprint(g.layout))

	return g, nil
}

func checkLayout(layout []Kind) error {
	for i := range layout {
		if layout[i] < 0 || int(layout[i]) >= len(kindNames) {
			return fmt.Errorf("Layout contains unknown Kind %d.",
				int(layout[i]))
		}
		if slices.Contains(layout[:i], layout[i]) {
			return fmt.Errorf("Layout %v lists %s more than once.",
				layout, layout[i])
		}
	}
	return nil
}

// binValues returns the observed values of b in layout order.
func binValues(b Bin, layout []Kind) ([]float64, error) {
	if len(b.Obs) != len(layout) {
		return nil, fmt.Errorf("The bin at z = %g (line %d) contains "+
			"the quantities %v, but every bin must contain exactly %v.",
			b.Z, b.Obs[0].Line, b.Kinds(), layout)
	}

	vals := make([]float64, len(layout))
	for i, k := range layout {
		j := slices.IndexFunc(b.Obs, func(o Observation) bool {
			return o.Kind == k
		})
		if j == -1 {
			return nil, fmt.Errorf("The bin at z = %g (line %d) contains "+
				"the quantities %v, but every bin must contain exactly %v.",
				b.Z, b.Obs[0].Line, b.Kinds(), layout)
		}
		vals[i] = b.Obs[j].Value
	}
	return vals, nil
}

func symmetricMatrix(rows [][]float64, n int) (*mat.SymDense, error) {
	if len(rows) != n {
		return nil, fmt.Errorf("The covariance matrix has %d rows, but "+
			"there are %d observations.", len(rows), n)
	}

	for i := range rows {
		if len(rows[i]) != n {
			return nil, fmt.Errorf("Row %d of the covariance matrix has "+
				"%d columns, but there are %d observations.",
				i, len(rows[i]), n)
		}
	}

	sym := mat.NewSymDense(n, nil)
	for i := range rows {
		for j := i; j < n; j++ {
			cij, cji := rows[i][j], rows[j][i]
			if !scalar.EqualWithinAbsOrRel(cij, cji, 0, symmetryTol) {
				return nil, fmt.Errorf("The covariance matrix is not "+
					"symmetric: C[%d][%d] = %g, but C[%d][%d] = %g.",
					i, j, cij, j, i, cji)
			}
			sym.SetSym(i, j, cij)
		}
	}
	return sym, nil
}

func invert(cov *mat.SymDense) (*mat.SymDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("The covariance matrix is not positive " +
			"definite.")
	}
	if cond := chol.Cond(); cond > maxCond {
		slog.Warn("covariance matrix is poorly conditioned", "cond", cond)
	}

	inv := &mat.SymDense{}
	if err := chol.InverseTo(inv); err != nil {
		return nil, fmt.Errorf("Could not invert the covariance "+
			"matrix: %w", err)
	}
	return inv, nil
}

func (g *Gaussian) Name() string { return g.name }

func (g *Gaussian) Requirements() Requirements { return GrowthRequirements }

// Layout returns the order of quantities within each bin.
func (g *Gaussian) Layout() []Kind { return slices.Clone(g.layout) }

// Redshifts returns the redshift of each bin.
func (g *Gaussian) Redshifts() []float64 { return slices.Clone(g.zs) }

// Bins returns the number of redshift bins.
func (g *Gaussian) Bins() int { return len(g.zs) }

// Points returns the number of scalar observations.
func (g *Gaussian) Points() int { return len(g.data) }

// Residuals returns theory - data for the cosmology c, in the row order of
// the covariance matrix.
func (g *Gaussian) Residuals(c Cosmology) []float64 {
	rd := c.RsDrag() * g.rsRescale
	out := make([]float64, len(g.data))
	for i, z := range g.zs {
		for j, k := range g.layout {
			idx := i*len(g.layout) + j
			out[idx] = k.Theory(c, z, rd) - g.data[idx]
		}
	}
	return out
}

// Chi2 returns r^T C^-1 r.
func (g *Gaussian) Chi2(c Cosmology) float64 {
	r := mat.NewVecDense(len(g.data), g.Residuals(c))
	return mat.Inner(r, g.invCov, r)
}

// LogLkl returns -chi^2 / 2.
func (g *Gaussian) LogLkl(c Cosmology) float64 {
	return -0.5 * g.Chi2(c)
}

// InverseError returns max |C C^-1 - I|, a measure of how accurately the
// covariance matrix was inverted.
func (g *Gaussian) InverseError() float64 {
	n := len(g.data)
	prod := mat.NewDense(n, n, nil)
	prod.Mul(g.cov, g.invCov)

	worst := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			worst = math.Max(worst, math.Abs(prod.At(i, j)-want))
		}
	}
	return worst
}
