package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// EnvPrefix is the prefix of environment overrides (SLURMGEN_OUTPUT_DIR, ...)
const EnvPrefix = "SLURMGEN"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (bound with BindFlags)
// 2. Environment variables (SLURMGEN_*)
// 3. User config file (~/.config/slurmgen/config.yaml)
// 4. System config file (/etc/slurmgen/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "slurmgen"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".slurmgen"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/slurmgen")

	// Current directory
	viper.AddConfigPath(".")

	// Environment variables; nested keys use "_" (catalog.file -> SLURMGEN_CATALOG_FILE)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("debug", false)
	viper.SetDefault("quiet", false)
	viper.SetDefault("extra", false)
	viper.SetDefault("output_dir", "")
	viper.SetDefault("default_output", DefaultOutputPattern)

	// catalog.source has no default: LoadDefaults seeds it, and leaving it
	// unset lets catalog.file alone select the file source.
	viper.SetDefault("catalog.file", "")

	viper.SetDefault("slurm.sinfo_bin", "sinfo")
	viper.SetDefault("slurm.scontrol_bin", "scontrol")
	viper.SetDefault("slurm.sacctmgr_bin", "sacctmgr")
}

// BindFlags binds command-line flags to their config keys.
// Only flags that exist in the set are bound.
func BindFlags(flags *pflag.FlagSet) error {
	for key, name := range map[string]string{"extra": "extra"} {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".slurmgen", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "slurmgen", ConfigFilename+"."+ConfigType), nil
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	Global.Debug = viper.GetBool("debug")
	Global.Quiet = viper.GetBool("quiet")
	Global.Extra = viper.GetBool("extra")

	if dir := viper.GetString("output_dir"); dir != "" {
		Global.OutputDir = dir
	}

	if out := viper.GetString("default_output"); out != "" {
		Global.DefaultOutput = out
	}

	if source := strings.ToLower(viper.GetString("catalog.source")); source != "" {
		Global.CatalogSource = source
	}
	Global.CatalogFile = viper.GetString("catalog.file")

	// An explicit catalog file implies the file source
	if Global.CatalogFile != "" && !viper.IsSet("catalog.source") {
		Global.CatalogSource = CatalogFile
	}

	if bin := viper.GetString("slurm.sinfo_bin"); bin != "" {
		Global.Slurm.SinfoBin = bin
	}
	if bin := viper.GetString("slurm.scontrol_bin"); bin != "" {
		Global.Slurm.ScontrolBin = bin
	}
	if bin := viper.GetString("slurm.sacctmgr_bin"); bin != "" {
		Global.Slurm.SacctmgrBin = bin
	}
}
