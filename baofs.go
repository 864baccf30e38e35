/*baofs evaluates BAO and growth-rate likelihoods from the command line.
Run "baofs help" for a list of modes.*/
package main

import (
	"os"

	"github.com/phil-mansfield/baofs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
