package likelihood

import (
	"fmt"
	"slices"
)

// conflicts lists, for each likelihood, other likelihoods which use the
// same measurements.
var conflicts = map[string][]string{
	BOSSDR12Name: {
		"bao_boss", "bao_boss_aniso", "bao_boss_aniso_gauss_approx",
		"bao_boss_dr12", "bao_fs_boss_dr12",
	},
}

// Conflicts returns the names of likelihoods that cannot be used alongside
// the named likelihood.
func Conflicts(name string) []string {
	out := slices.Clone(conflicts[name])
	for other, names := range conflicts {
		if slices.Contains(names, name) && !slices.Contains(out, other) {
			out = append(out, other)
		}
	}
	slices.Sort(out)
	return out
}

// Registry is the set of likelihoods used in a run.
type Registry struct {
	lkls []Likelihood
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Register adds l to r. An error is returned if a likelihood with the same
// name has already been registered or if l shares data with a registered
// likelihood.
func (r *Registry) Register(l Likelihood) error {
	name := l.Name()
	bad := Conflicts(name)
	for _, prev := range r.lkls {
		switch {
		case prev.Name() == name:
			return fmt.Errorf("The likelihood '%s' has been registered "+
				"twice.", name)
		case slices.Contains(bad, prev.Name()):
			return fmt.Errorf("The likelihood '%s' conflicts with the "+
				"already registered likelihood '%s': they use the same "+
				"measurements.", name, prev.Name())
		}
	}
	r.lkls = append(r.lkls, l)
	return nil
}

// Likelihoods returns the registered likelihoods in registration order.
func (r *Registry) Likelihoods() []Likelihood {
	return slices.Clone(r.lkls)
}

// Requirements merges the requirements of every registered likelihood.
func (r *Registry) Requirements() Requirements {
	out := Requirements{}
	for _, l := range r.lkls {
		out = out.Merge(l.Requirements())
	}
	return out
}

// Evaluate calls LogLkl on every registered likelihood. vals is in
// registration order.
func (r *Registry) Evaluate(c Cosmology) (vals []float64, total float64) {
	vals = make([]float64, len(r.lkls))
	for i, l := range r.lkls {
		vals[i] = l.LogLkl(c)
		total += vals[i]
	}
	return vals, total
}
