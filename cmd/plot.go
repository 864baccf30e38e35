package cmd

import (
	"fmt"
	"image/color"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/phil-mansfield/baofs/likelihood"
)

// PlotOptions control the output of the plot mode.
type PlotOptions struct {
	Axis string // alpha_t, alpha_p, or f_sigma8
	Tag  string // defaults to the first tag
	Out  string // defaults to <name>_<tag>_<axis>.png
}

func newPlotCommand() *cobra.Command {
	opt := PlotOptions{}
	cmd := &cobra.Command{
		Use:   "plot likelihood.config",
		Short: "Plot the chi^2 profile of a grid likelihood's scan",
		Long: `plot writes a PNG of the tabulated chi^2 of a grid likelihood
along one axis of its scan, with the other two coordinates held at the grid
point with the smallest chi^2.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fname, err := Plot(args[0], opt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", fname)
			return nil
		},
	}
	cmd.Flags().StringVar(&opt.Axis, "axis", "alpha_t",
		"scan axis to plot: alpha_t, alpha_p, or f_sigma8")
	cmd.Flags().StringVar(&opt.Tag, "tag", "", "correlation function tag")
	cmd.Flags().StringVarP(&opt.Out, "out", "o", "", "output PNG file")
	return cmd
}

// Plot writes the chi^2 profile of the grid likelihood described by
// lkFile and returns the name of the file it wrote.
func Plot(lkFile string, opt PlotOptions) (string, error) {
	axis, err := likelihood.ParseAxis(opt.Axis)
	if err != nil {
		return "", err
	}

	config := &LikelihoodConfig{}
	if err = config.ReadConfig(lkFile); err != nil {
		return "", err
	}
	if config.lkType != gridType {
		return "", fmt.Errorf("The likelihood %s in %s has type '%s', but "+
			"only %s likelihoods can be plotted.", config.name, lkFile,
			config.lkType, gridType)
	}
	g, err := config.loadGrid()
	if err != nil {
		return "", err
	}

	interp := g.Interpolators()
	tag := opt.Tag
	if tag == "" {
		tag = interp.Tags()[0]
	} else if !interp.Has(tag) {
		return "", fmt.Errorf("The likelihood %s has no chi2 scan for the "+
			"tag '%s'. Its tags are %v.", g.Name(), tag, interp.Tags())
	}

	out := opt.Out
	if out == "" {
		out = fmt.Sprintf("%s_%s_%s.png", g.Name(), tag, axis)
	}

	p, err := profilePlot(g.Name(), tag, axis, interp.Scan(tag))
	if err != nil {
		return "", err
	}
	if err = p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		return "", fmt.Errorf("Could not save plot to %s: %w", out, err)
	}
	return out, nil
}

func profilePlot(
	name, tag string, axis likelihood.Axis, s *likelihood.Scan,
) (*plot.Plot, error) {
	xs, chi2 := s.Profile(axis)
	at, ap, fs, chi2Min := s.Minimum()

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: chi2[i]}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s): minimum chi^2 = %.4g at "+
		"(%.4g, %.4g, %.4g)", name, tag, chi2Min, at, ap, fs)
	p.X.Label.Text = axis.String()
	p.Y.Label.Text = "chi^2"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = line.Color

	p.Add(line, scatter, plotter.NewGrid())
	p.Legend.Add("grid values", line, scatter)
	p.Legend.Top = true
	return p, nil
}
