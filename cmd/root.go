package cmd

import (
	"errors"
	"io"
	"os"
	"os/user"

	"github.com/Dvegrod/little-toolset/internal/catalog"
	"github.com/Dvegrod/little-toolset/internal/config"
	"github.com/Dvegrod/little-toolset/internal/jobspec"
	"github.com/Dvegrod/little-toolset/internal/prompt"
	"github.com/Dvegrod/little-toolset/internal/scheduler"
	"github.com/Dvegrod/little-toolset/internal/utils"
	"github.com/spf13/cobra"
)

// ExitCodeError is returned for every failure, including an empty partition list.
const ExitCodeError = 1

var extraMode bool

var rootCmd = &cobra.Command{
	Use:   "slurmgen",
	Short: "Interactively build a SLURM batch script from the cluster's partitions and limits.",
	Long: `slurmgen asks for the resources of one job, checks them against the limits
SLURM advertises for the chosen partition, and writes <job name>_slurm.sh
ready for sbatch. Use --extra for memory, GPUs, accounts, QOS, arrays,
dependencies, environment variables and modules.`,
	Version:       config.VERSION,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load defaults
		config.LoadDefaults()

		// Step 2: Initialize Viper (config file, env vars) and bind flags
		if err := config.InitViper(); err != nil {
			utils.PrintWarning("Ignoring config file: %v", err)
		}
		if err := config.BindFlags(cmd.Flags()); err != nil {
			utils.PrintDebug("%v", err)
		}

		// Step 3: Load values from Viper into Global config
		config.LoadFromViper()

		utils.DebugMode = config.Global.Debug
		utils.QuietMode = config.Global.Quiet
		utils.PrintDebug("slurmgen version: %s", utils.StyleInfo(config.VERSION))
		if path, err := config.GetUserConfigPath(); err == nil {
			utils.PrintDebug("User config file: %s", utils.StylePath(path))
		}
		utils.PrintDebug("Catalog source: %s", config.Global.CatalogSource)
		utils.PrintDebug("Output directory: %s", utils.StylePath(config.Global.OutputDir))
		if !utils.IsInteractiveShell() {
			utils.PrintDebug("stdin is not a terminal; reading answers from input")
		}
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return run(config.Global, os.Stdin, os.Stdout)
	},
}

// run collects one job from in, renders it and writes the script.
func run(cfg config.Config, in io.Reader, out io.Writer) error {
	cat, err := catalog.Load(cfg)
	if err != nil {
		return err
	}

	utils.PrintMessage("Describe your job. Press Enter to accept the value in [brackets].")
	if cfg.Extra {
		utils.PrintNote("Extra mode: optional SLURM settings will be asked too.")
	}

	collector := jobspec.NewCollector(cat, prompt.NewTerminal(in, out),
		jobspec.WithExtra(cfg.Extra),
		jobspec.WithUser(currentUser()),
		jobspec.WithDefaultOutput(cfg.DefaultOutput),
	)
	spec, err := collector.Collect()
	if err != nil {
		return err
	}

	script := scheduler.Assemble(spec, cfg.Extra)

	var sink scheduler.Sink = scheduler.FileSink{Dir: cfg.OutputDir}
	path, err := sink.Write(spec, script)
	if err != nil {
		return err
	}

	utils.PrintSuccess("Batch script written to %s", utils.StylePath(path))
	utils.PrintHint("Submit it with: %s", utils.StyleCommand("sbatch "+path))
	return nil
}

// currentUser returns the login name used to look up account associations.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		utils.PrintError("%v", err)
		switch {
		case errors.Is(err, catalog.ErrNoPartitions), catalog.IsCatalogError(err):
			utils.PrintHint("Check that the SLURM client tools work here, or set %s to a catalog file.",
				utils.StyleName("SLURMGEN_CATALOG_FILE"))
		case errors.Is(err, jobspec.ErrInputClosed):
			utils.PrintHint("No script was written.")
		}
		os.Exit(ExitCodeError)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&extraMode, "extra", "e", false, "Ask for optional settings (memory, GPUs, account, QOS, array, modules, ...)")
}
