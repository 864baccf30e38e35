package likelihood

import (
	"fmt"
	"strconv"

	"github.com/phil-mansfield/baofs/cmd/catalog"
)

// Observation is a single measurement from an observation file.
type Observation struct {
	Z, Value float64
	Kind     Kind
	Line     int // file line number, zero if not read from a file
}

// Bin is the set of observations which share a redshift.
type Bin struct {
	Z   float64
	Obs []Observation
}

// ReadObservations reads a "<z> <value> <kind>" table.
func ReadObservations(fname string) ([]Observation, error) {
	t, err := catalog.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	obs, err := ParseObservations(t)
	if err != nil {
		return nil, fmt.Errorf("In %s: %w", fname, err)
	}
	return obs, nil
}

// ParseObservations converts the rows of t into observations.
func ParseObservations(t *catalog.Table) ([]Observation, error) {
	if err := t.CheckWidth(3); err != nil {
		return nil, err
	}

	obs := make([]Observation, t.Len())
	for i, row := range t.Fields {
		z, err := strconv.ParseFloat(row[0], 64)
		if err != nil || !(z >= 0) {
			return nil, fmt.Errorf("The redshift '%s' on line %d is not "+
				"a non-negative number.", row[0], t.Lines[i])
		}
		val, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("The value '%s' on line %d is not "+
				"a number.", row[1], t.Lines[i])
		}
		kind, err := ParseKind(row[2])
		if err != nil {
			return nil, fmt.Errorf("Line %d: %w", t.Lines[i], err)
		}
		obs[i] = Observation{Z: z, Value: val, Kind: kind, Line: t.Lines[i]}
	}
	return obs, nil
}

// GroupBins groups observations by redshift. Bins are ordered by the first
// appearance of their redshift and observations keep their relative order.
func GroupBins(obs []Observation) []Bin {
	bins := []Bin{}
	index := map[float64]int{}
	for _, o := range obs {
		i, ok := index[o.Z]
		if !ok {
			i = len(bins)
			index[o.Z] = i
			bins = append(bins, Bin{Z: o.Z})
		}
		bins[i].Obs = append(bins[i].Obs, o)
	}
	return bins
}

// Kinds returns the kinds of the observations in b, in order.
func (b Bin) Kinds() []Kind {
	out := make([]Kind, len(b.Obs))
	for i := range b.Obs {
		out[i] = b.Obs[i].Kind
	}
	return out
}
