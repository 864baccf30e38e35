package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phil-mansfield/baofs/cosmo"
	"github.com/phil-mansfield/baofs/likelihood"
	"github.com/phil-mansfield/baofs/parse"
	"github.com/phil-mansfield/baofs/version"
)

// CosmologyConfig describes the reference cosmology likelihoods are
// evaluated against.
type CosmologyConfig struct {
	version string
	p       cosmo.Params
}

// ReadConfig reads a [cosmology] config file and returns an error, if
// applicable.
func (config *CosmologyConfig) ReadConfig(fname string) error {
	def := cosmo.DefaultParams()

	vars := parse.NewConfigVars("cosmology")
	vars.String(&config.version, "Version", version.SourceVersion)
	vars.Float(&config.p.H, "H", def.H)
	vars.Float(&config.p.OmegaM, "OmegaM", def.OmegaM)
	vars.Float(&config.p.OmegaB, "OmegaB", def.OmegaB)
	vars.Float(&config.p.NS, "NS", def.NS)
	vars.Float(&config.p.Sigma8, "Sigma8", def.Sigma8)
	vars.Float(&config.p.TCMB, "TCMB", def.TCMB)

	if err := parse.ReadConfig(fname, vars); err != nil {
		return err
	}
	return config.validate()
}

func (config *CosmologyConfig) validate() error {
	if err := version.Check(config.version); err != nil {
		return err
	}
	return config.p.Validate()
}

// Params returns the cosmological parameters set by the config file.
func (config *CosmologyConfig) Params() cosmo.Params { return config.p }

// ExampleConfig returns an example configuration file.
func (config *CosmologyConfig) ExampleConfig() string {
	p := cosmo.DefaultParams()
	return fmt.Sprintf(`[cosmology]
# Target version of baofs. This option merely allows baofs to notice when
# its source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
Version = %s

# Parameters of a flat LCDM cosmology. Every variable is optional and
# defaults to the Planck 2018 values shown here.

# H0 / (100 km/s/Mpc)
H = %g
# Total matter density, including baryons.
OmegaM = %g
OmegaB = %g
# Scalar spectral index.
NS = %g
# sigma_8 at z = 0.
Sigma8 = %g
# CMB temperature in K. Only used for the sound horizon.
TCMB = %g`, version.SourceVersion, p.H, p.OmegaM, p.OmegaB, p.NS,
		p.Sigma8, p.TCMB)
}

const (
	gaussianType = "gaussian"
	gridType     = "grid"
)

// LikelihoodConfig describes a single likelihood and the files it reads.
type LikelihoodConfig struct {
	version string

	lkType, name string
	dataDir      string
	dataFile     string
	rsRescale    float64

	// gaussian
	covFile string
	layout  []string

	// grid
	scanTags, scanFiles        []string
	transverseFid, parallelFid float64

	// Directory of the config file, used when dataDir is not set.
	configDir string
}

// ReadConfig reads a [likelihood] config file and returns an error, if
// applicable.
func (config *LikelihoodConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("likelihood")
	vars.String(&config.version, "Version", version.SourceVersion)
	vars.String(&config.lkType, "Type", "")
	vars.String(&config.name, "Name", "")
	vars.String(&config.dataDir, "DataDirectory", "")
	vars.String(&config.dataFile, "DataFile", "")
	vars.Float(&config.rsRescale, "RsRescale", 1)
	vars.String(&config.covFile, "CovFile", "")
	vars.Strings(&config.layout, "Layout", []string{})
	vars.Strings(&config.scanTags, "ScanTags", []string{})
	vars.Strings(&config.scanFiles, "ScanFiles", []string{})
	vars.Float(&config.transverseFid, "TransverseFid", -1)
	vars.Float(&config.parallelFid, "ParallelFid", -1)

	if err := parse.ReadConfig(fname, vars); err != nil {
		return err
	}
	config.configDir = filepath.Dir(fname)

	if err := config.validate(); err != nil {
		return fmt.Errorf("In %s: %w", fname, err)
	}
	return nil
}

// validate checks that all the user-set fields of LikelihoodConfig are
// consistent. It does not check that any files exist.
func (config *LikelihoodConfig) validate() error {
	if err := version.Check(config.version); err != nil {
		return err
	}

	if config.name == "" {
		return fmt.Errorf("The 'Name' variable isn't set.")
	} else if config.dataFile == "" {
		return fmt.Errorf("The 'DataFile' variable isn't set.")
	} else if !(config.rsRescale > 0) {
		return fmt.Errorf("The 'RsRescale' variable is set to %g, but it "+
			"must be positive.", config.rsRescale)
	}

	switch config.lkType {
	case gaussianType:
		if config.covFile == "" {
			return fmt.Errorf("The 'CovFile' variable isn't set.")
		}
		if _, err := likelihood.ParseKinds(config.layout); err != nil {
			return fmt.Errorf("The 'Layout' variable is invalid: %w", err)
		}
	case gridType:
		if len(config.scanTags) == 0 {
			return fmt.Errorf("The 'ScanTags' variable isn't set.")
		} else if len(config.scanTags) != len(config.scanFiles) {
			return fmt.Errorf("'ScanTags' has %d entries, but "+
				"'ScanFiles' has %d.", len(config.scanTags),
				len(config.scanFiles))
		}
		for i := range config.scanTags {
			for j := 0; j < i; j++ {
				if config.scanTags[i] == config.scanTags[j] {
					return fmt.Errorf("The tag '%s' appears in "+
						"'ScanTags' more than once.", config.scanTags[i])
				}
			}
		}
		if !(config.transverseFid > 0) {
			return fmt.Errorf("The 'TransverseFid' variable must be set " +
				"to a positive number.")
		} else if !(config.parallelFid > 0) {
			return fmt.Errorf("The 'ParallelFid' variable must be set " +
				"to a positive number.")
		}
	case "":
		return fmt.Errorf("The 'Type' variable isn't set.")
	default:
		return fmt.Errorf("The 'Type' variable is set to '%s', which I "+
			"don't recognize. The supported types are %s and %s.",
			config.lkType, gaussianType, gridType)
	}

	return nil
}

// path resolves a file name relative to the data directory.
func (config *LikelihoodConfig) path(fname string) string {
	if filepath.IsAbs(fname) {
		return fname
	}
	dir := config.dataDir
	if dir == "" {
		dir = config.configDir
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(config.configDir, dir)
	}
	return filepath.Join(dir, fname)
}

// Load reads the files named by config and constructs the likelihood.
func (config *LikelihoodConfig) Load() (likelihood.Likelihood, error) {
	switch config.lkType {
	case gaussianType:
		return config.loadGaussian()
	case gridType:
		return config.loadGrid()
	}
	panic(fmt.Sprintf("Unvalidated likelihood type '%s'.", config.lkType))
}

func (config *LikelihoodConfig) loadGaussian() (*likelihood.Gaussian, error) {
	gConfig, ok := likelihood.Preset(config.name)
	if !ok {
		gConfig = likelihood.GaussianConfig{Name: config.name}
	}
	gConfig.RsRescale = config.rsRescale
	if len(config.layout) > 0 {
		layout, err := likelihood.ParseKinds(config.layout)
		if err != nil {
			return nil, err
		}
		gConfig.Layout = layout
	}

	return likelihood.ReadGaussian(
		gConfig, config.path(config.dataFile), config.path(config.covFile),
	)
}

func (config *LikelihoodConfig) loadGrid() (*likelihood.Grid, error) {
	gConfig := likelihood.GridConfig{
		Name:          config.name,
		RdRescale:     config.rsRescale,
		TransverseFid: config.transverseFid,
		ParallelFid:   config.parallelFid,
	}
	scanFiles := make(map[string]string, len(config.scanTags))
	for i, tag := range config.scanTags {
		scanFiles[tag] = config.path(config.scanFiles[i])
	}
	return likelihood.ReadGrid(gConfig, config.path(config.dataFile), scanFiles)
}

// ExampleConfig returns an example configuration file.
func (config *LikelihoodConfig) ExampleConfig() string {
	return fmt.Sprintf(`[likelihood]
# Target version of baofs. This option merely allows baofs to notice when
# its source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
Version = %s

# Supported Types: %s, %s
# A %s likelihood compares distances and f*sigma8 against measurements with
# a covariance matrix. A %s likelihood interpolates precomputed chi^2 scans
# in (alpha_t, alpha_p, f*sigma8).
Type = %s

# Name of the likelihood. Some likelihoods cannot be used together because
# they share measurements, and baofs uses Name to detect this. The names
# %s and %s also select the layout of their covariance matrices.
Name = %s

# Relative file names are relative to DataDirectory. If DataDirectory is not
# set or is itself relative, it is taken relative to the directory
# containing this file.
DataDirectory = data/

# DataFile has one measurement per line. For %s likelihoods lines take the
# form "<z> <value> <quantity>", where quantity is one of
# %s.
# For %s likelihoods lines take the form "<tag> <z> <code> <code>", where
# tag selects a chi^2 scan and the codes are 5 and 6 for (D_A/rd, 1/(H rd))
# or 8 and 6 for (D_M/rd, 1/(H rd)). Any line containing a '#' is ignored.
DataFile = sdss_DR12_LRG_BAO_DMDH_fs8.txt

# The sound horizon from the cosmology is multiplied by RsRescale. Defaults
# to 1.
RsRescale = 1.0

# %s only: the covariance matrix, and the order of quantities within each
# redshift bin which its rows follow. If Layout isn't set, the preset for
# Name is used, or failing that the order of the first bin in DataFile.
CovFile = sdss_DR12_LRG_BAO_DMDH_fs8_covtot.txt
# Layout = DM_over_rd, DH_over_rd, f_sigma8

# %s only: a chi^2 scan file for each tag, with the columns
# "alpha_t alpha_p f_sigma8 chi2", and the fiducial distances, in units of
# rd, used to convert distances into alphas.
# ScanTags = cf
# ScanFiles = sdss_DR16_ELG_FSBAO_DMDHfs8gridlikelihood.txt
# TransverseFid = 18.33
# ParallelFid = 19.6`,
		version.SourceVersion, gaussianType, gridType, gaussianType,
		gridType, gaussianType, likelihood.BOSSDR12Name,
		likelihood.SDSSMGSName, likelihood.BOSSDR12Name, gaussianType,
		kindList(), gridType, gaussianType, gridType)
}

func kindList() string {
	names := []string{}
	for _, k := range []likelihood.Kind{
		likelihood.DMOverRd, likelihood.DHOverRd,
		likelihood.DVOverRd, likelihood.FSigma8,
	} {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}
