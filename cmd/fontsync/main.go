package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/logandonley/fontsync/internal/config"
	"github.com/logandonley/fontsync/internal/logger"
	"github.com/logandonley/fontsync/pkg/fontsync"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options mirrors the command-line flags; only flags that were set on the
// command line override the loaded configuration.
type options struct {
	configFile  string
	skipSync    bool
	apache      bool
	ofl         bool
	ufl         bool
	installDeps bool
	fontsDir    string
	installDir  string
	unattended  bool
	failOnError bool
	cloneDepth  int
	debug       bool
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

func newRootCmdWith(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fontsync",
		Short: "fontsync installs the Google Fonts library on this machine",
		Long: `Keeps a local mirror of the Google Fonts repository and installs every
font under the selected license categories that is not installed yet.
Must be run with administrative privileges.

Examples:
  # Pull the repository and install everything, asking before installing
  fontsync

  # Install only Apache and Ubuntu Font License fonts without prompting
  fontsync --ofl=false --yes

  # Use an existing checkout without pulling
  fontsync --skip-sync --fonts-dir /srv/google-fonts`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			summary, err := fontsync.New(cfg).Run(cmd.Context())
			if err != nil {
				return err
			}
			logger.Debugf("Run finished: %+v", summary)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&opts.fontsDir, "fonts-dir", "", "Font repository directory (default \"fonts\" next to the executable)")
	flags.StringVar(&opts.installDir, "install-dir", "", "Install fonts into this directory instead of the system font directory")
	flags.BoolVar(&opts.apache, "apache", true, "Install fonts with the Apache license")
	flags.BoolVar(&opts.ofl, "ofl", true, "Install fonts with the Open Font License")
	flags.BoolVar(&opts.ufl, "ufl", true, "Install fonts with the Ubuntu Font License")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().BoolVar(&opts.skipSync, "skip-sync", false, "Skip pulling the font repository")
	rootCmd.Flags().BoolVar(&opts.installDeps, "install-deps", false, "Install missing dependencies without asking")
	rootCmd.Flags().BoolVarP(&opts.unattended, "yes", "y", false, "Install without asking for confirmation")
	rootCmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false, "Exit with an error if any font fails to install")
	rootCmd.Flags().IntVar(&opts.cloneDepth, "clone-depth", 0, "Create a shallow clone with this many commits (0 clones everything)")

	rootCmd.AddCommand(newScanCmd(opts))
	return rootCmd
}

func newScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Show which fonts would be installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			session, err := fontsync.New(cfg).Scan()
			if err != nil {
				return fmt.Errorf("scanning fonts: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found: %d\n", session.Summary.Discovered)
			fmt.Fprintf(out, "Already installed: %d\n", session.Summary.AlreadyInstalled)
			fmt.Fprintf(out, "Pending: %d\n", len(session.Pending))
			for _, c := range session.Pending {
				fmt.Fprintf(out, "  - %s (%s)\n", c.Name(), c.Category)
			}
			return nil
		},
	}
}

// loadConfig builds the run configuration: defaults, then the config file,
// then any flag given explicitly.
func loadConfig(flags *pflag.FlagSet, opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		cfg, err = config.Load(opts.configFile)
		if err != nil {
			return config.Config{}, err
		}
	}

	if flags.Changed("fonts-dir") {
		cfg.RepositoryDir = opts.fontsDir
	}
	if flags.Changed("install-dir") {
		cfg.InstallDir = opts.installDir
	}
	if flags.Changed("apache") {
		cfg.Licenses.Apache = opts.apache
	}
	if flags.Changed("ofl") {
		cfg.Licenses.OFL = opts.ofl
	}
	if flags.Changed("ufl") {
		cfg.Licenses.UFL = opts.ufl
	}
	if flags.Changed("skip-sync") {
		cfg.SkipSync = opts.skipSync
	}
	if flags.Changed("install-deps") {
		cfg.InstallDeps = opts.installDeps
	}
	if flags.Changed("yes") {
		cfg.Unattended = opts.unattended
	}
	if flags.Changed("fail-on-error") {
		cfg.FailOnError = opts.failOnError
	}
	if flags.Changed("clone-depth") {
		cfg.CloneDepth = opts.cloneDepth
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if cfg.Debug {
		logger.SetLevel("debug")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
