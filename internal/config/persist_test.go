package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadFromViperDefaults(t *testing.T) {
	resetViper(t)
	setDefaults()
	LoadDefaults()
	LoadFromViper()

	if Global.Extra {
		t.Errorf("Extra should default to false")
	}
	if Global.DefaultOutput != DefaultOutputPattern {
		t.Errorf("DefaultOutput = %q; want %q", Global.DefaultOutput, DefaultOutputPattern)
	}
	if Global.CatalogSource != CatalogSlurm {
		t.Errorf("CatalogSource = %q; want %q", Global.CatalogSource, CatalogSlurm)
	}
	if Global.Slurm.SinfoBin != "sinfo" {
		t.Errorf("SinfoBin = %q; want sinfo", Global.Slurm.SinfoBin)
	}
}

func TestLoadFromViperConfigFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	content := `extra: true
output_dir: /scratch/jobs
catalog:
  file: /etc/cluster.yaml
slurm:
  sinfo_bin: /opt/slurm/bin/sinfo
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	setDefaults()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	LoadDefaults()
	LoadFromViper()

	if !Global.Extra {
		t.Errorf("Extra should be true from config file")
	}
	if Global.OutputDir != "/scratch/jobs" {
		t.Errorf("OutputDir = %q", Global.OutputDir)
	}
	if Global.CatalogSource != CatalogFile {
		t.Errorf("catalog.file without catalog.source should select the file source, got %q", Global.CatalogSource)
	}
	if Global.Slurm.SinfoBin != "/opt/slurm/bin/sinfo" {
		t.Errorf("SinfoBin = %q", Global.Slurm.SinfoBin)
	}
	if Global.Slurm.SacctmgrBin != "sacctmgr" {
		t.Errorf("SacctmgrBin should keep its default, got %q", Global.Slurm.SacctmgrBin)
	}
}

func TestBindFlagsOverridesDefault(t *testing.T) {
	resetViper(t)
	setDefaults()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BoolP("extra", "e", false, "")
	if err := BindFlags(flags); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flags.Parse([]string{"-e"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	LoadDefaults()
	LoadFromViper()
	if !Global.Extra {
		t.Errorf("-e should enable extra mode")
	}
}

func TestCatalogFileFromEnvSelectsFileSource(t *testing.T) {
	resetViper(t)
	t.Setenv("SLURMGEN_CATALOG_FILE", "/tmp/cluster.yaml")

	if err := InitViper(); err != nil {
		t.Fatalf("InitViper: %v", err)
	}
	LoadDefaults()
	LoadFromViper()

	if Global.CatalogFile != "/tmp/cluster.yaml" {
		t.Errorf("CatalogFile = %q", Global.CatalogFile)
	}
	if Global.CatalogSource != CatalogFile {
		t.Errorf("SLURMGEN_CATALOG_FILE alone should select the file source, got %q", Global.CatalogSource)
	}
}

func TestExplicitCatalogSourceWins(t *testing.T) {
	resetViper(t)
	t.Setenv("SLURMGEN_CATALOG_FILE", "/tmp/cluster.yaml")
	t.Setenv("SLURMGEN_CATALOG_SOURCE", "slurm")

	if err := InitViper(); err != nil {
		t.Fatalf("InitViper: %v", err)
	}
	LoadDefaults()
	LoadFromViper()

	if Global.CatalogSource != CatalogSlurm {
		t.Errorf("CatalogSource = %q; want %q", Global.CatalogSource, CatalogSlurm)
	}
}
