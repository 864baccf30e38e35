/*package cmd contains code for running baofs in its various command line
modes. Each mode is a cobra subcommand of the root command returned by
NewRootCommand.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/baofs/cosmo"
	"github.com/phil-mansfield/baofs/likelihood"
	"github.com/phil-mansfield/baofs/logging"
	"github.com/phil-mansfield/baofs/version"
)

// ConfigNames maps the names accepted by the example-config mode to the
// config files they describe.
var ConfigNames = map[string]Config{
	"cosmology":  &CosmologyConfig{},
	"likelihood": &LikelihoodConfig{},
}

// Config is the interface shared by every type of config file.
type Config interface {
	// ReadConfig reads a config file and stores its contents within the
	// Config.
	ReadConfig(fname string) error
	// ExampleConfig returns the text of an example config file.
	ExampleConfig() string
}

var (
	_ Config = &CosmologyConfig{}
	_ Config = &LikelihoodConfig{}

	_ likelihood.Cosmology = &cosmo.FlatLCDM{}
)

// NewRootCommand creates the baofs command and all its modes. Normal output
// is written to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	var logMode string

	root := &cobra.Command{
		Use:   "baofs",
		Short: "Evaluate BAO and f*sigma8 likelihoods",
		Long: `baofs evaluates BAO distance and growth rate likelihoods for
galaxy survey measurements against a reference flat LCDM cosmology.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			f, err := logging.ParseFlag(logMode)
			if err != nil {
				return err
			}
			logging.Init(os.Stderr, f)
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&logMode, "log", "nil",
		"logging mode: nil, performance, or debug")

	root.AddCommand(
		newEvalCommand(),
		newCheckCommand(),
		newPlotCommand(),
		newExampleConfigCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command on the command line arguments.
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of baofs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "baofs version %s\n",
				version.SourceVersion)
		},
	}
}

func newExampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "example-config [cosmology | likelihood]",
		Short:     "Print an example config file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"cosmology", "likelihood"},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, ok := ConfigNames[args[0]]
			if !ok {
				return fmt.Errorf("I don't recognize the config file type "+
					"'%s'. The supported types are cosmology and "+
					"likelihood.", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.ExampleConfig())
			return nil
		},
	}
}
