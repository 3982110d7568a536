package config

import (
	"os"
)

const VERSION = "0.3.0"

// DefaultOutputPattern is the scheduler-native stdout file name used when the
// operator does not choose one.
const DefaultOutputPattern = "slurm-%j.out"

// Catalog sources understood by LoadCatalog.
const (
	CatalogSlurm = "slurm"
	CatalogFile  = "file"
)

// SlurmConfig holds the binaries used to query the cluster
type SlurmConfig struct {
	SinfoBin    string
	ScontrolBin string
	SacctmgrBin string
}

// Config holds global application settings
type Config struct {
	Debug         bool
	Quiet         bool
	Extra         bool
	Version       string
	OutputDir     string
	DefaultOutput string
	CatalogSource string
	CatalogFile   string
	Slurm         SlurmConfig
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to built-in defaults.
func LoadDefaults() {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	Global = Config{
		Debug:         false,
		Quiet:         false,
		Extra:         false,
		Version:       VERSION,
		OutputDir:     cwd,
		DefaultOutput: DefaultOutputPattern,
		CatalogSource: CatalogSlurm,
		Slurm: SlurmConfig{
			SinfoBin:    "sinfo",
			ScontrolBin: "scontrol",
			SacctmgrBin: "sacctmgr",
		},
	}
}
