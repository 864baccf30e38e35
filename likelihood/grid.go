package likelihood

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/phil-mansfield/baofs/cmd/catalog"
)

const ELGName = "bao_fs_eboss_dr16_elg"

// Distance type codes used in the data files of grid likelihoods.
const (
	CodeDVOverRs      = 3  // D_V/rs
	CodeDV            = 4  // D_V/Mpc
	CodeDAOverRs      = 5  // D_A/rs
	CodeCOverHRs      = 6  // c/(H rs)
	CodeRsOverDV      = 7  // rs/D_V
	CodeDMOverRs      = 8  // D_M/rs
	CodeHRsOverRsFid  = 9  // H rs/rs_fid
	CodeDMRsFidOverRs = 10 // D_M rs_fid/rs
)

// DistancePair is a supported combination of transverse and parallel
// distances.
type DistancePair int

const (
	// AngularHubble is (D_A/rd, 1/(H rd)), codes 5 and 6.
	AngularHubble DistancePair = iota
	// ComovingHubble is (D_M/rd, 1/(H rd)), codes 8 and 6.
	ComovingHubble
)

func (p DistancePair) String() string {
	switch p {
	case AngularHubble:
		return "D_A/rd, 1/(H rd)"
	case ComovingHubble:
		return "D_M/rd, 1/(H rd)"
	}
	panic(fmt.Sprintf("Unknown DistancePair %d.", int(p)))
}

// PairFromCodes returns the DistancePair described by two type codes. The
// codes may be given in either order.
func PairFromCodes(a, b int) (DistancePair, bool) {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == CodeDAOverRs && b == CodeCOverHRs:
		return AngularHubble, true
	case a == CodeCOverHRs && b == CodeDMOverRs:
		return ComovingHubble, true
	}
	return -1, false
}

// Distances returns the transverse and parallel distances for the pair,
// in units of rd.
func (p DistancePair) Distances(c Cosmology, z, rd float64) (transverse, parallel float64) {
	parallel = 1 / (c.Hubble(z) * rd)
	switch p {
	case AngularHubble:
		return c.AngularDistance(z) / rd, parallel
	case ComovingHubble:
		return comovingDistance(c, z) / rd, parallel
	}
	panic(fmt.Sprintf("Unknown DistancePair %d.", int(p)))
}

// GridRow is one measurement of a grid likelihood.
type GridRow struct {
	Tag  string // correlation function type
	Z    float64
	Pair DistancePair
	Line int
}

// GridConfig configures a grid likelihood.
type GridConfig struct {
	Name string
	// RdRescale multiplies the sound horizon returned by the cosmology.
	RdRescale float64
	// Fiducial distances, in units of rd, used to compute alphas.
	TransverseFid, ParallelFid float64
}

// ELGConfig is the eBOSS DR16 ELG BAO+FS likelihood. The fiducial
// distances depend on the data release and must be filled in.
func ELGConfig() GridConfig {
	return GridConfig{Name: ELGName, RdRescale: 1}
}

// Grid is a likelihood computed by interpolating precomputed chi^2 scans.
type Grid struct {
	name      string
	rdRescale float64
	rows      []GridRow
	interp    *Chi2Interpolators
}

// ReadGrid reads a "<tag> <z> <code> <code>" data file and one chi^2 scan
// per correlation function tag, keyed by tag in scanFiles.
func ReadGrid(
	config GridConfig, dataFile string, scanFiles map[string]string,
) (*Grid, error) {
	t, err := catalog.ReadFile(dataFile)
	if err != nil {
		return nil, err
	}
	rows, err := ParseGridRows(t)
	if err != nil {
		return nil, fmt.Errorf("In %s: %w", dataFile, err)
	}

	scans := make(map[string]*Scan, len(scanFiles))
	for tag, fname := range scanFiles {
		if scans[tag], err = ReadScan(fname); err != nil {
			return nil, err
		}
	}

	g, err := NewGrid(config, rows, scans)
	if err != nil {
		return nil, fmt.Errorf("Could not construct likelihood '%s' from "+
			"%s: %w", config.Name, dataFile, err)
	}
	return g, nil
}

// ParseGridRows converts the rows of t into grid measurements. Code pairs
// which don't correspond to a DistancePair are an error.
func ParseGridRows(t *catalog.Table) ([]GridRow, error) {
	if err := t.CheckWidth(4); err != nil {
		return nil, err
	}

	zs, err := t.Floats(1)
	if err != nil {
		return nil, err
	}
	codeA, err := t.Ints(2)
	if err != nil {
		return nil, err
	}
	codeB, err := t.Ints(3)
	if err != nil {
		return nil, err
	}

	rows := make([]GridRow, t.Len())
	for i, fields := range t.Fields {
		z, a, b := zs[i], codeA[i], codeB[i]
		if !(z >= 0) {
			return nil, fmt.Errorf("The redshift '%s' on line %d is not "+
				"a non-negative number.", fields[1], t.Lines[i])
		}
		pair, ok := PairFromCodes(a, b)
		if !ok {
			return nil, fmt.Errorf("The data type codes %d and %d on line "+
				"%d are not a supported combination. Supported "+
				"combinations are (5, 6) and (8, 6).", a, b, t.Lines[i])
		}
		rows[i] = GridRow{Tag: fields[0], Z: z, Pair: pair, Line: t.Lines[i]}
	}
	return rows, nil
}

// NewGrid constructs a grid likelihood. Every row's tag must have a scan.
func NewGrid(
	config GridConfig, rows []GridRow, scans map[string]*Scan,
) (*Grid, error) {
	if config.Name == "" {
		return nil, fmt.Errorf("The likelihood has no name.")
	} else if !(config.RdRescale > 0) || math.IsInf(config.RdRescale, 0) {
		return nil, fmt.Errorf("RdRescale is %g, but it must be a "+
			"positive number.", config.RdRescale)
	} else if len(rows) == 0 {
		return nil, fmt.Errorf("There are no measurements.")
	}

	interp, err := NewChi2Interpolators(
		scans, config.TransverseFid, config.ParallelFid,
	)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		if !interp.Has(r.Tag) {
			return nil, fmt.Errorf("Line %d uses the correlation function "+
				"'%s', but only %v have chi2 scans.", r.Line, r.Tag,
				interp.Tags())
		}
		if _, ok := PairFromCodes(pairCodes(r.Pair)); !ok {
			return nil, fmt.Errorf("Line %d has an unknown distance "+
				"pair %d.", r.Line, int(r.Pair))
		}
	}

	g := &Grid{
		name:      config.Name,
		rdRescale: config.RdRescale,
		rows:      append([]GridRow{}, rows...),
		interp:    interp,
	}
	slog.Debug("loaded likelihood", "name", g.name, "rows", len(g.rows),
		"tags", fmt.Sprint(interp.Tags()))
	return g, nil
}

func pairCodes(p DistancePair) (a, b int) {
	switch p {
	case AngularHubble:
		return CodeDAOverRs, CodeCOverHRs
	case ComovingHubble:
		return CodeDMOverRs, CodeCOverHRs
	}
	return -1, -1
}

func (g *Grid) Name() string { return g.name }

func (g *Grid) Requirements() Requirements { return GrowthRequirements }

// Rows returns the measurements of g.
func (g *Grid) Rows() []GridRow { return append([]GridRow{}, g.rows...) }

// Interpolators returns the chi^2 scans of g.
func (g *Grid) Interpolators() *Chi2Interpolators { return g.interp }

// Chi2 returns the sum of the interpolated chi^2 of every row.
func (g *Grid) Chi2(c Cosmology) float64 {
	rd := c.RsDrag() * g.rdRescale
	chi2 := 0.0
	for _, r := range g.rows {
		transverse, parallel := r.Pair.Distances(c, r.Z, rd)
		x, err := g.interp.Chi2(r.Tag, transverse, parallel, fSigma8(c, r.Z))
		if err != nil {
			panic(err.Error())
		}
		chi2 += x
	}
	return chi2
}

// LogLkl returns the total chi^2 itself, not -chi^2/2. Samplers which
// expect a log-likelihood must account for this.
func (g *Grid) LogLkl(c Cosmology) float64 {
	return g.Chi2(c)
}
