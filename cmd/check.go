package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/baofs/likelihood"
)

// Inversions less accurate than this fail the check.
const maxInverseError = 1e-8

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check likelihood.config...",
		Short: "Load likelihood data files and report on them",
		Long: `check loads each likelihood, registers them together, and
reports the size of each data set. For gaussian likelihoods it also reports
max |C C^-1 - I|, and fails if this is larger than 1e-8.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := Check(args)
			if werr := writeLines(cmd.OutOrStdout(), lines); werr != nil {
				return werr
			}
			return err
		},
	}
}

// Check loads the likelihoods described by the config files lkFiles and
// returns a description of each.
func Check(lkFiles []string) ([]string, error) {
	reg, err := loadRegistry(lkFiles)
	if err != nil {
		return nil, err
	}

	lines := []string{}
	failedTests := []string{}
	for _, l := range reg.Likelihoods() {
		switch l := l.(type) {
		case *likelihood.Gaussian:
			invErr := l.InverseError()
			lines = append(lines, fmt.Sprintf(
				"%s: gaussian, %d bins at z = %v, %d points, layout %v, "+
					"max |C C^-1 - I| = %.3g", l.Name(), l.Bins(),
				l.Redshifts(), l.Points(), l.Layout(), invErr,
			))
			if invErr > maxInverseError {
				failedTests = append(failedTests, fmt.Sprintf(
					"The covariance matrix of %s was inverted with an "+
						"error of %.3g.", l.Name(), invErr,
				))
			}

		case *likelihood.Grid:
			interp := l.Interpolators()
			lines = append(lines, fmt.Sprintf("%s: grid, %d rows, tags %v",
				l.Name(), len(l.Rows()), interp.Tags()))
			for _, tag := range interp.Tags() {
				lim := interp.Scan(tag).Limits()
				lines = append(lines, fmt.Sprintf(
					"    %s: alpha_t in %v, alpha_p in %v, f_sigma8 in %v",
					tag, lim[0], lim[1], lim[2],
				))
			}
		}
	}

	if len(failedTests) > 0 {
		lines = append(lines, failedTests...)
		return lines, fmt.Errorf("%d sanity check(s) failed.",
			len(failedTests))
	}
	return lines, nil
}
