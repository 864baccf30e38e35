package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/baofs/cmd/catalog"
	"github.com/phil-mansfield/baofs/cosmo"
	"github.com/phil-mansfield/baofs/likelihood"
	"github.com/phil-mansfield/baofs/logging"
)

func newEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval cosmology.config likelihood.config...",
		Short: "Evaluate likelihoods against a reference cosmology",
		Long: `eval registers every likelihood, checking that no two of them
share measurements, and evaluates each against the cosmology. One line is
printed per likelihood, followed by the sum of the reported values. Gaussian
likelihoods report -chi^2/2 and grid likelihoods report chi^2; the second
column names which, and is "mixed" on the total line if both appear.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := Eval(args[0], args[1:])
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), lines)
		},
	}
}

// Eval evaluates the likelihoods described by the config files lkFiles
// against the cosmology in cosmoFile and returns the output lines.
func Eval(cosmoFile string, lkFiles []string) ([]string, error) {
	t0 := time.Now()

	cConfig := &CosmologyConfig{}
	if err := cConfig.ReadConfig(cosmoFile); err != nil {
		return nil, err
	}
	c, err := cosmo.NewFlatLCDM(cConfig.Params())
	if err != nil {
		return nil, err
	}
	logging.Timing("cosmology", t0)

	reg, err := loadRegistry(lkFiles)
	if err != nil {
		return nil, err
	}

	t1 := time.Now()
	vals, total := reg.Evaluate(c)
	logging.Timing("evaluation", t1)

	lkls := reg.Likelihoods()
	names := make([]string, 0, len(lkls)+1)
	reports := make([]string, 0, len(lkls)+1)
	for _, l := range lkls {
		names = append(names, l.Name())
		reports = append(reports, reportedValue(l))
	}
	names = append(names, "total")
	reports = append(reports, totalReported(reports))
	vals = append(vals, total)

	req := reg.Requirements()
	lines := []string{
		fmt.Sprintf("# Requirements: output = %v, P_k_max_h/Mpc = %g, "+
			"z_max_pk = %g", req.Output, req.PkMaxHMpc, req.ZMaxPk),
		catalog.CommentString(
			[]string{"Name", "Reports"}, []string{"Value"},
			[]int{0, 1, 2}, []int{1, 1, 1},
		),
	}
	lines = append(lines, catalog.FormatCols(
		[][]string{names, reports}, [][]float64{vals}, []int{0, 1, 2},
	)...)
	return lines, nil
}

// reportedValue names the quantity l.LogLkl returns.
func reportedValue(l likelihood.Likelihood) string {
	if _, ok := l.(*likelihood.Grid); ok {
		return "chi2"
	}
	return "-chi2/2"
}

func totalReported(reports []string) string {
	if len(reports) == 0 {
		return "none"
	}
	for _, r := range reports[1:] {
		if r != reports[0] {
			return "mixed"
		}
	}
	return reports[0]
}

// loadRegistry loads every likelihood config file and registers the
// results.
func loadRegistry(lkFiles []string) (*likelihood.Registry, error) {
	reg := likelihood.NewRegistry()
	for _, fname := range lkFiles {
		t := time.Now()
		config := &LikelihoodConfig{}
		if err := config.ReadConfig(fname); err != nil {
			return nil, err
		}
		l, err := config.Load()
		if err != nil {
			return nil, err
		}
		if err = reg.Register(l); err != nil {
			return nil, err
		}
		slog.Debug("registered likelihood", "name", l.Name(),
			"config", fname)
		logging.Timing("load "+l.Name(), t)
	}
	return reg, nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
